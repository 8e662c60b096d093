package employee

import (
	"net/http"
	"strconv"

	employeeerrors "ess-api/internal/employee/errors"
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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
}

func (h *Handler) GetProfile(c *gin.Context) {
	bioID, _ := strconv.Atoi(c.Query("bio_id"))
	if bioID == 0 {
		e := employeeerrors.ErrMissingBioID
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), bioID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"employee": resp})
}

// UpdateImageName keeps the legacy update endpoint semantics: empty input
// and no-row-matched are soft failures reported with HTTP 200.
func (h *Handler) UpdateImageName(c *gin.Context) {
	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SoftError(c, "Missing emp_id or user_img")
		return
	}
	if req.EmpID == 0 || req.UserImg == "" {
		response.SoftError(c, "Missing emp_id or user_img")
		return
	}

	updated, err := h.service.UpdateImage(c.Request.Context(), req.EmpID, req.UserImg)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !updated {
		response.SoftError(c, "Employee not found or no changes made")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (h *Handler) UpdateContact(c *gin.Context) {
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SoftError(c, "Missing emp_id")
		return
	}
	if req.EmpID == 0 {
		response.SoftError(c, "Missing emp_id")
		return
	}

	updated, err := h.service.UpdateContact(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !updated {
		response.SoftError(c, "Employee not found or no changes made")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
