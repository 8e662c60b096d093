package auth

import (
	"net/http"
	"strings"

	autherrors "ess-api/internal/auth/errors"
	"ess-api/internal/shared/apperror"
	"ess-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message)
		return
	}

	// A whitespace-only username is a missing field, not a credential
	// mismatch. The password is taken as sent.
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		e := autherrors.ErrMissingFields
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("login rejected",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": resp})
}
