package vacancyerrors

import (
	"net/http"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

var (
	ErrVacancyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vacante no encontrada",
		http.StatusNotFound,
	)

	ErrInvalidVacancyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid vacancy ID",
		http.StatusBadRequest,
	)

	ErrNotVacancyOwner = apperror.New(
		apperror.CodeForbidden,
		"No eres el propietario de la empresa de esta vacante",
		http.StatusForbidden,
	)

	ErrExpirationNotFuture = apperror.New(
		apperror.CodeInvalidInput,
		"La fecha de expiración debe ser futura",
		http.StatusBadRequest,
	)

	ErrMissingExpiration = apperror.New(
		apperror.CodeInvalidInput,
		"La vacante necesita fecha de expiración para publicarse",
		http.StatusBadRequest,
	)

	ErrVacancyAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"No tienes acceso a esta vacante",
		http.StatusForbidden,
	)
)
