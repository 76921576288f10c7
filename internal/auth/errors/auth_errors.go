package autherrors

import (
	"net/http"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Credenciales inválidas",
		http.StatusUnauthorized,
	)

	ErrUserInactive = apperror.New(
		apperror.CodeForbidden,
		"Usuario inactivo",
		http.StatusForbidden,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Token inválido",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Refresh token inválido",
		http.StatusUnauthorized,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Usuario no encontrado",
		http.StatusNotFound,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"No se pudo generar el token",
		http.StatusInternalServerError,
	)
)
