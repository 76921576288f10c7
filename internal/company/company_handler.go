package company

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	companyerrors "github.com/juandiego305/Gestion-candidatos/internal/company/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/middleware"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/response"
	"github.com/juandiego305/Gestion-candidatos/internal/storage"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("company request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.MustActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, companyerrors.ErrInvalidCompanyID)
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

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, companyerrors.ErrInvalidCompanyID)
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), middleware.MustActor(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, companyerrors.ErrInvalidCompanyID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.MustActor(c), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) UploadLogo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, companyerrors.ErrInvalidCompanyID)
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		h.writeServiceError(c, apperror.RequiredField("logo"))
		return
	}
	if fileHeader.Size > storage.MaxUploadSize {
		h.writeServiceError(c, storage.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("logo"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("logo"))
		return
	}

	resp, err := h.service.UploadLogo(
		c.Request.Context(),
		middleware.MustActor(c),
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
