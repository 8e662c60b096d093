package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"ess-api/internal/employee"
	mediaerrors "ess-api/internal/media/errors"
	"ess-api/internal/shared/contextutil"

	"go.uber.org/zap"
)

const MaxUploadBytes = 5 * 1024 * 1024

var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

type UploadRequest struct {
	BioID       int
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

type UploadResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
}

type service struct {
	storage  Storage
	profiles employee.Service
	logger   *zap.Logger
}

func NewService(storage Storage, profiles employee.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("media.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("media.service")
	}
	return &service{storage: storage, profiles: profiles, logger: l}
}

// Upload stages the image, points the employee row at it, and only then
// promotes the object. The legacy flow wrote the file first and answered
// ok with a warning when the row update failed afterwards; here every
// partial failure discards the staged object, restores the previous
// filename when the row was already updated, and surfaces an error.
func (s *service) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if req.BioID == 0 {
		return UploadResult{}, mediaerrors.ErrMissingBioID
	}
	if req.Data == nil || req.Size == 0 {
		return UploadResult{}, mediaerrors.ErrNoFile
	}

	ext, ok := allowedTypes[strings.ToLower(req.ContentType)]
	if !ok {
		return UploadResult{}, mediaerrors.ErrInvalidFileType
	}
	if req.Size > MaxUploadBytes {
		return UploadResult{}, mediaerrors.ErrFileTooLarge
	}

	// The current filename is needed to undo the row update if promotion
	// fails later.
	profile, err := s.profiles.GetProfile(ctx, req.BioID)
	if err != nil {
		return UploadResult{}, err
	}
	previous := profile.UserImg

	filename := normalizeFilename(req.Filename, req.BioID, ext)

	if err := s.storage.SaveStaging(ctx, filename, req.Data, req.Size, req.ContentType); err != nil {
		s.logger.Error("stage upload failed",
			zap.Int("bio_id", req.BioID),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return UploadResult{}, mediaerrors.ErrStorageFailed
	}

	updated, err := s.profiles.UpdateImage(ctx, req.BioID, filename)
	if err != nil {
		s.discard(ctx, filename)
		return UploadResult{}, err
	}
	if !updated {
		s.discard(ctx, filename)
		return UploadResult{}, mediaerrors.ErrEmployeeNotFound
	}

	publicPath, err := s.storage.Promote(ctx, filename)
	if err != nil {
		s.logger.Error("promote upload failed",
			zap.Int("bio_id", req.BioID),
			zap.String("filename", filename),
			zap.Error(err),
		)
		// Point the row back at the old image before dropping the staged
		// object, so the profile never references a missing file.
		if _, restoreErr := s.profiles.UpdateImage(ctx, req.BioID, previous); restoreErr != nil {
			s.logger.Error("restore previous image failed",
				zap.Int("bio_id", req.BioID),
				zap.String("filename", previous),
				zap.Error(restoreErr),
			)
		}
		s.discard(ctx, filename)
		return UploadResult{}, mediaerrors.ErrStorageFailed
	}

	contextutil.GetLogger(ctx, s.logger).Info("image upload success",
		zap.Int("bio_id", req.BioID),
		zap.String("filename", filename),
		zap.String("path", publicPath),
	)

	return UploadResult{Filename: filename, Path: publicPath}, nil
}

func (s *service) discard(ctx context.Context, filename string) {
	if err := s.storage.DiscardStaging(ctx, filename); err != nil {
		s.logger.Error("discard staged upload failed",
			zap.String("filename", filename),
			zap.Error(err),
		)
	}
}

// normalizeFilename enforces the user_{bio_id}_{unix}.{ext} naming even when
// the client proposes its own name. The extension always comes from the
// validated content type, never from the proposed name.
func normalizeFilename(proposed string, bioID int, ext string) string {
	proposed = path.Base(strings.TrimSpace(proposed))
	if proposed != "" && proposed != "." && strings.HasPrefix(proposed, fmt.Sprintf("user_%d_", bioID)) {
		return strings.TrimSuffix(proposed, path.Ext(proposed)) + "." + ext
	}
	return fmt.Sprintf("user_%d_%d.%s", bioID, time.Now().Unix(), ext)
}
