package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	autherrors "github.com/juandiego305/Gestion-candidatos/internal/auth/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/apperror"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	if req.Identifier() == "" {
		h.writeServiceError(c, apperror.RequiredField("username"))
		return
	}

	pair, user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Browser clients authenticate by cookie, API clients by header.
	c.SetCookie("access_token", pair.AccessToken, int(accessTokenTTL.Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"tokens": pair,
		"user":   user,
	}, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	pair, user, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.SetCookie("access_token", pair.AccessToken, int(accessTokenTTL.Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"tokens": pair,
		"user":   user,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		h.writeServiceError(c, autherrors.ErrInvalidToken)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}
