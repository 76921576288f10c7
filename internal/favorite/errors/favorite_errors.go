package favoriteerrors

import (
	"net/http"

	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
)

var (
	ErrFavoriteNotFound = apperror.New(
		apperror.CodeNotFound,
		"Favorito no encontrado",
		http.StatusNotFound,
	)

	ErrNotStaff = apperror.New(
		apperror.CodeForbidden,
		"Solo RRHH o administradores pueden marcar candidatos favoritos",
		http.StatusForbidden,
	)

	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Candidato no encontrado",
		http.StatusNotFound,
	)

	ErrTargetNotCandidate = apperror.New(
		apperror.CodeInvalidInput,
		"El usuario no es un candidato",
		http.StatusBadRequest,
	)

	ErrInvalidFavoriteID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid favorite ID",
		http.StatusBadRequest,
	)
)
