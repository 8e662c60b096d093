package media

import (
	"net/http"
	"strconv"

	mediaerrors "ess-api/internal/media/errors"
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
	l := zap.L().Named("media.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("media.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		e := mediaerrors.ErrNoFile
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
		return
	}

	bioID, _ := strconv.Atoi(c.PostForm("bio_id"))
	filename := c.PostForm("filename")

	file, err := fileHeader.Open()
	if err != nil {
		e := mediaerrors.ErrStorageFailed
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
		return
	}
	defer file.Close()

	result, err := h.service.Upload(c.Request.Context(), UploadRequest{
		BioID:       bioID,
		Filename:    filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        file,
	})
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("image upload failed",
			zap.Int("bio_id", bioID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"filename": result.Filename,
		"path":     result.Path,
		"message":  "Image uploaded and profile updated",
	})
}
