package assignment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assignmenterrors "github.com/juandiego305/Gestion-candidatos/internal/assignment/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/middleware"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/response"
	vacancyerrors "github.com/juandiego305/Gestion-candidatos/internal/vacancy/errors"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("assignment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("assignment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Assign(c.Request.Context(), middleware.MustActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListByVacancy(c *gin.Context) {
	vacancyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, vacancyerrors.ErrInvalidVacancyID)
		return
	}

	resp, err := h.service.ListByVacancy(c.Request.Context(), middleware.MustActor(c), vacancyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, assignmenterrors.ErrInvalidAssignmentID)
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.MustActor(c), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
