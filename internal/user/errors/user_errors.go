package usererrors

import (
	"net/http"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Usuario no encontrado",
		http.StatusNotFound,
	)

	ErrEmailAlreadyInUse = apperror.New(
		apperror.CodeConflict,
		"El correo ya está en uso",
		http.StatusConflict,
	)

	ErrUsernameAlreadyInUse = apperror.New(
		apperror.CodeConflict,
		"El nombre de usuario ya está en uso",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Missing required fields",
		http.StatusBadRequest,
	)

	ErrNotAdmin = apperror.New(
		apperror.CodeForbidden,
		"Only administrators can manage users",
		http.StatusForbidden,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown role",
		http.StatusBadRequest,
	)
)
