package payslip

import (
	"fmt"
	"net/http"
	"strconv"

	paysliperrors "ess-api/internal/payslip/errors"
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
	l := zap.L().Named("payslip.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payslip request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
}

func (h *Handler) List(c *gin.Context) {
	bioID, _ := strconv.Atoi(c.Query("bio_id"))
	if bioID == 0 {
		e := paysliperrors.ErrMissingBioID
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
		return
	}

	months, _ := strconv.Atoi(c.Query("months"))

	resp, err := h.service.List(c.Request.Context(), bioID, months)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"emp_id":        resp.EmpID,
		"employee_name": resp.EmployeeName,
		"payslips":      resp.Payslips,
	})
}

func (h *Handler) Download(c *gin.Context) {
	bioID, _ := strconv.Atoi(c.Query("bio_id"))
	if bioID == 0 {
		e := paysliperrors.ErrMissingBioID
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
		return
	}
	period := c.Query("period")

	pdf, err := h.service.Download(c.Request.Context(), bioID, period)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("payslip_%d_%s.pdf", bioID, period)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
