package applicationerrors

import (
	"net/http"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

var (
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Postulación no encontrada",
		http.StatusNotFound,
	)

	ErrAlreadyApplied = apperror.New(
		apperror.CodeConflict,
		"Ya te has postulado a esta vacante",
		http.StatusConflict,
	)

	ErrNotCandidate = apperror.New(
		apperror.CodeForbidden,
		"Solo los candidatos pueden postularse",
		http.StatusForbidden,
	)

	ErrVacancyNotOpen = apperror.New(
		apperror.CodeInvalidState,
		"La vacante no está disponible para postulaciones",
		http.StatusBadRequest,
	)

	ErrCannotManage = apperror.New(
		apperror.CodeForbidden,
		"No puedes gestionar esta postulación",
		http.StatusForbidden,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Estado no válido",
		http.StatusBadRequest,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Transición de estado no válida",
		http.StatusBadRequest,
	)

	ErrInvalidApplicationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid application ID",
		http.StatusBadRequest,
	)

	ErrMissingCV = apperror.New(
		apperror.CodeInvalidInput,
		"El CV es obligatorio",
		http.StatusBadRequest,
	)

	ErrEmptyNote = apperror.New(
		apperror.CodeInvalidInput,
		"La nota no puede estar vacía",
		http.StatusBadRequest,
	)
)
