package application

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applicationerrors "github.com/juandiego305/Gestion-candidatos/internal/application/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/middleware"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/response"
	"github.com/juandiego305/Gestion-candidatos/internal/storage"
	vacancyerrors "github.com/juandiego305/Gestion-candidatos/internal/vacancy/errors"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("application.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("application request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) applicationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, applicationerrors.ErrInvalidApplicationID)
		return 0, false
	}
	return id, true
}

// Apply expects a multipart form: "vacante_id" plus the CV under "cv".
func (h *Handler) Apply(c *gin.Context) {
	vacancyID, err := strconv.ParseInt(c.PostForm("vacante_id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, vacancyerrors.ErrInvalidVacancyID)
		return
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		h.writeServiceError(c, applicationerrors.ErrMissingCV)
		return
	}
	if fileHeader.Size > storage.MaxUploadSize {
		h.writeServiceError(c, storage.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("cv"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("cv"))
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), middleware.MustActor(c), ApplyRequest{
		VacancyID:   vacancyID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		CV:          data,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, ok := h.applicationID(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ChangeStatus(c.Request.Context(), middleware.MustActor(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Annotate(c *gin.Context) {
	id, ok := h.applicationID(c)
	if !ok {
		return
	}

	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Annotate(c.Request.Context(), middleware.MustActor(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.applicationID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), middleware.MustActor(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), middleware.MustActor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
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
