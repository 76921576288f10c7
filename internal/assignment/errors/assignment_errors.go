package assignmenterrors

import (
	"net/http"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

var (
	ErrAssignerNotAdmin = apperror.New(
		apperror.CodeForbidden,
		"Solo un administrador puede asignar RRHH",
		http.StatusForbidden,
	)

	ErrNotVacancyOwner = apperror.New(
		apperror.CodeForbidden,
		"Solo el propietario de la empresa puede asignar RRHH",
		http.StatusForbidden,
	)

	ErrRRHHNotFound = apperror.New(
		apperror.CodeNotFound,
		"Usuario RRHH no encontrado",
		http.StatusNotFound,
	)

	ErrTargetNotRRHH = apperror.New(
		apperror.CodeInvalidInput,
		"El usuario no tiene rol de RRHH",
		http.StatusBadRequest,
	)

	ErrCompanyMismatch = apperror.New(
		apperror.CodeForbidden,
		"El usuario RRHH no pertenece a la empresa de la vacante",
		http.StatusForbidden,
	)

	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Asignación no encontrada",
		http.StatusNotFound,
	)

	ErrInvalidAssignmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid assignment ID",
		http.StatusBadRequest,
	)
)
