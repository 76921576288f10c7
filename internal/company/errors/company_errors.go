package companyerrors

import (
	"net/http"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Empresa no encontrada",
		http.StatusNotFound,
	)

	ErrNITAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"NIT ya registrado",
		http.StatusConflict,
	)

	ErrNotCompanyOwner = apperror.New(
		apperror.CodeForbidden,
		"No eres el propietario de esta empresa",
		http.StatusForbidden,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrCompanyAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"No tienes acceso a esta empresa",
		http.StatusForbidden,
	)
)
