package auth

import (
	"context"
	"errors"

	autherrors "ess-api/internal/auth/errors"
	"ess-api/internal/bootstrap"
	"ess-api/internal/employee"
	employeeerrors "ess-api/internal/employee/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
}

type service struct {
	repo     Repository
	profiles employee.Service
	audit    bootstrap.AuditLogger
	logger   *zap.Logger
}

func NewService(repo Repository, profiles employee.Service, audit bootstrap.AuditLogger, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, profiles: profiles, audit: audit, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.auditLogin(ctx, username, false, "unknown user")
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	// Account status is checked before the password so a disabled account
	// answers ACCOUNT_DISABLED whether or not the password was right.
	if user.Status != StatusEnabled {
		s.auditLogin(ctx, username, false, "account disabled")
		return LoginResponse{}, autherrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.auditLogin(ctx, username, false, "bad password")
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	resp := LoginResponse{
		UserID:   user.UserID,
		UserName: user.UserName,
		BioID:    user.BioID,
	}

	// bio_id joins the user to its employee record. The join is LEFT in the
	// schema, so a user without an employee row still logs in with an empty
	// employee object.
	profile, err := s.profiles.GetProfile(ctx, user.BioID)
	if err != nil {
		if !errors.Is(err, employeeerrors.ErrEmployeeNotFound) &&
			!errors.Is(err, employeeerrors.ErrMissingBioID) {
			s.logger.Error("login profile load failed",
				zap.String("user_name", username),
				zap.Int("bio_id", user.BioID),
				zap.Error(err),
			)
			return LoginResponse{}, err
		}
		s.logger.Warn("login without employee record",
			zap.String("user_name", username),
			zap.Int("bio_id", user.BioID),
		)
	} else {
		resp.Employee = profile
	}

	s.auditLogin(ctx, username, true, "")
	s.logger.Info("login success",
		zap.String("user_name", username),
		zap.Int("bio_id", user.BioID),
	)

	return resp, nil
}

func (s *service) auditLogin(ctx context.Context, username string, ok bool, reason string) {
	if s.audit == nil {
		return
	}
	action := "LOGIN_SUCCESS"
	if !ok {
		action = "LOGIN_FAILED"
	}
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  action,
		Message: reason,
		Meta:    map[string]any{"user_name": username},
	})
}
