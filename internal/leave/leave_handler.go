package leave

import (
	"encoding/json"
	"net/http"
	"time"

	"ess-api/internal/shared/apperror"
	"ess-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyResultTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message)
		h.releaseIdempotencyLock(c)
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		h.releaseIdempotencyLock(c)
		return
	}

	envelope := gin.H{
		"ok":      true,
		"message": "Leave application submitted",
		"leave":   resp,
	}
	h.cacheIdempotentResult(c, envelope)

	c.JSON(http.StatusOK, envelope)
}

func (h *Handler) Types(c *gin.Context) {
	types, err := h.service.Types(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leave_types": types})
}

// cacheIdempotentResult stores the success envelope under the key the
// idempotency middleware scoped for this request, so a retried POST with
// the same Idempotency-Key replays it instead of inserting twice.
func (h *Handler) cacheIdempotentResult(c *gin.Context, envelope gin.H) {
	if h.rdb == nil {
		return
	}
	cacheKey, ok := c.Get("idempotency_cache_key")
	if !ok {
		return
	}
	if payload, err := json.Marshal(envelope); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey.(string), payload, idempotencyResultTTL)
	}
	if lockKey, ok := c.Get("idempotency_lock_key"); ok {
		h.rdb.Del(c.Request.Context(), lockKey.(string))
	}
}

// releaseIdempotencyLock lets a failed attempt be retried immediately
// instead of waiting out the in-flight lock.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lockKey, ok := c.Get("idempotency_lock_key"); ok {
		h.rdb.Del(c.Request.Context(), lockKey.(string))
	}
}
