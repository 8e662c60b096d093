package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ess-api/internal/events"
	leaveerrors "ess-api/internal/leave/errors"
	"ess-api/internal/messaging/kafka"
	"ess-api/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dateLayout    = "2006-01-02"
	typesCacheKey = "leave:types"
)

// DefaultTypeNames is the catalogue seeded into an empty deployment.
var DefaultTypeNames = []string{
	"Vacation Leave",
	"Sick Leave",
	"Personal Leave",
	"Maternity Leave",
	"Paternity Leave",
}

type Service interface {
	Apply(ctx context.Context, req ApplyRequest) (ApplyResponse, error)
	Types(ctx context.Context) ([]TypeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Apply(ctx context.Context, req ApplyRequest) (ApplyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("leave apply requested",
		zap.String("request_id", rid),
		zap.Int("employee_id", req.EmployeeID),
		zap.Int("leave_type_id", req.LeaveTypeID),
	)

	// Presence first, then format, then ordering. Each tier only runs
	// when the previous one passed.
	if req.EmployeeID == 0 || req.LeaveTypeID == 0 ||
		strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" ||
		strings.TrimSpace(req.Reason) == "" {
		return ApplyResponse{}, leaveerrors.ErrMissingFields
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return ApplyResponse{}, leaveerrors.ErrInvalidDate
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return ApplyResponse{}, leaveerrors.ErrInvalidDate
	}

	if end.Before(start) {
		return ApplyResponse{}, leaveerrors.ErrEndBeforeStart
	}

	application := Application{
		UUID:        uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartHalf:   "none",
		EndHalf:     "none",
		HalfType:    "none",
		LeavePay:    "paid",
		Reason:      strings.TrimSpace(req.Reason),
		Status:      "pending",
		AddedBy:     req.EmployeeID,
		Source:      "mobile",
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave apply begin tx failed", zap.Error(err))
		return ApplyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, &application); err != nil {
		s.logger.Error("leave apply persist failed",
			zap.Int("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return ApplyResponse{}, err
	}

	// Best effort enrichment; readers fall back to the id when the
	// type row is gone.
	typeName, err := qtx.FindTypeName(ctx, application.LeaveTypeID)
	if err != nil {
		typeName = ""
	}
	typeName = strings.TrimSpace(typeName)

	if s.outbox != nil {
		event := events.LeaveRequestedEvent{
			EventType:     "leave_requested",
			RequestID:     rid,
			LeaveUUID:     application.UUID,
			EmployeeID:    application.EmployeeID,
			LeaveTypeID:   application.LeaveTypeID,
			LeaveTypeName: typeName,
			StartDate:     application.StartDate,
			EndDate:       application.EndDate,
			Status:        application.Status,
			Source:        application.Source,
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ApplyResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_application",
			AggregateID:   application.UUID,
			EventType:     event.EventType,
			Topic:         events.LeaveRequestedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("leave apply outbox persist failed",
				zap.String("uuid", application.UUID),
				zap.Error(err),
			)
			return ApplyResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave apply commit failed", zap.Error(err))
		return ApplyResponse{}, err
	}

	s.logger.Info("leave apply success",
		zap.String("request_id", rid),
		zap.String("uuid", application.UUID),
		zap.Int("employee_id", application.EmployeeID),
		zap.String("start_date", application.StartDate),
		zap.String("end_date", application.EndDate),
	)

	return ApplyResponse{
		LeaveID:       application.LeaveID,
		UUID:          application.UUID,
		EmployeeID:    application.EmployeeID,
		LeaveTypeID:   application.LeaveTypeID,
		LeaveTypeName: typeName,
		StartDate:     application.StartDate,
		EndDate:       application.EndDate,
		Reason:        application.Reason,
		Status:        application.Status,
		CreatedAt:     application.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *service) Types(ctx context.Context) ([]TypeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, typesCacheKey).Result(); err == nil {
			var resp []TypeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(typesCacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAllTypes(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]TypeResponse, 0, len(types))
		for _, t := range types {
			resp = append(resp, TypeResponse{
				LeaveTypeID:   t.LeaveTypeID,
				LeaveTypeName: strings.TrimSpace(t.LeaveTypeName),
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, typesCacheKey, jsonData, 10*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("leave types fetch failed", zap.Error(err))
		return nil, fmt.Errorf("fetch leave types: %w", err)
	}

	return v.([]TypeResponse), nil
}
