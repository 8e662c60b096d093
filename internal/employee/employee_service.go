package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "ess-api/internal/employee/errors"
	"ess-api/internal/events"
	"ess-api/internal/messaging/kafka"
	"ess-api/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const profileCacheKeyPrefix = "employee:profile:"

func profileCacheKey(bioID int) string {
	return fmt.Sprintf("%s%d", profileCacheKeyPrefix, bioID)
}

type Service interface {
	GetProfile(ctx context.Context, bioID int) (ProfileResponse, error)
	UpdateImage(ctx context.Context, empID int, filename string) (bool, error)
	UpdateContact(ctx context.Context, req UpdateContactRequest) (bool, error)
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
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
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

func (s *service) GetProfile(ctx context.Context, bioID int) (ProfileResponse, error) {
	if bioID == 0 {
		return ProfileResponse{}, employeeerrors.ErrMissingBioID
	}

	cacheKey := profileCacheKey(bioID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp ProfileResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		row, err := s.repo.FindProfileByID(ctx, bioID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ProfileResponse{}, employeeerrors.ErrEmployeeNotFound
			}
			return ProfileResponse{}, err
		}

		resp := mapToProfileResponse(*row)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return ProfileResponse{}, err
	}

	return v.(ProfileResponse), nil
}

func (s *service) UpdateImage(ctx context.Context, empID int, filename string) (bool, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update image requested",
		zap.String("request_id", rid),
		zap.Int("emp_id", empID),
		zap.String("filename", filename),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update image begin tx failed", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.UpdateImage(ctx, empID, filename)
	if err != nil {
		s.logger.Error("update image persist failed", zap.Int("emp_id", empID), zap.Error(err))
		return false, err
	}

	// Zero affected rows is the legacy soft failure, not an error: the
	// caller reports it without aborting. No event is published for it.
	if affected == 0 {
		_ = tx.Commit()
		s.logger.Warn("update image matched no row", zap.Int("emp_id", empID))
		return false, nil
	}

	if s.outbox != nil {
		event := events.ProfileImageUpdatedEvent{
			EventType:  "profile_image_updated",
			RequestID:  rid,
			EmployeeID: empID,
			Filename:   filename,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return false, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   fmt.Sprintf("%d", empID),
			EventType:     event.EventType,
			Topic:         events.ProfileImageUpdatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("update image outbox persist failed", zap.Int("emp_id", empID), zap.Error(err))
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update image commit failed", zap.Error(err))
		return false, err
	}

	s.invalidateProfile(ctx, empID)
	s.logger.Info("update image success",
		zap.String("request_id", rid),
		zap.Int("emp_id", empID),
		zap.String("filename", filename),
	)

	return true, nil
}

func (s *service) UpdateContact(ctx context.Context, req UpdateContactRequest) (bool, error) {
	fields := map[string]any{}
	if strings.TrimSpace(req.ContactNo) != "" {
		fields["b_cont_no"] = req.ContactNo
	}
	if strings.TrimSpace(req.Email) != "" {
		fields["b_email"] = req.Email
	}
	if strings.TrimSpace(req.StreetAddress) != "" {
		fields["emp_street_address"] = req.StreetAddress
	}
	if strings.TrimSpace(req.EmergencyName) != "" {
		fields["emergency_contact_name"] = req.EmergencyName
	}
	if strings.TrimSpace(req.EmergencyRelationship) != "" {
		fields["emergency_contact_relationship"] = req.EmergencyRelationship
	}
	if strings.TrimSpace(req.EmergencyNumber) != "" {
		fields["emergency_contact_number"] = req.EmergencyNumber
	}

	if len(fields) == 0 {
		return false, nil
	}

	affected, err := s.repo.UpdateContact(ctx, req.EmpID, fields)
	if err != nil {
		s.logger.Error("update contact failed", zap.Int("emp_id", req.EmpID), zap.Error(err))
		return false, err
	}

	if affected > 0 {
		s.invalidateProfile(ctx, req.EmpID)
		s.logger.Info("update contact success", zap.Int("emp_id", req.EmpID))
	}

	return affected > 0, nil
}

func (s *service) invalidateProfile(ctx context.Context, bioID int) {
	if s.rdb == nil {
		return
	}
	cacheKey := profileCacheKey(bioID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate profile cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToProfileResponse(row ProfileRow) ProfileResponse {
	resp := ProfileResponse{
		EmpID:                 row.EmpID,
		FirstName:             row.FirstName,
		LastName:              row.LastName,
		MiddleName:            row.MiddleName,
		BirthDate:             row.BirthDate,
		DateHired:             row.DateHired,
		PermanentAddress:      row.PermanentAddress,
		StreetAddress:         row.StreetAddress,
		ProvinceCode:          row.ProvinceCode,
		CityCode:              row.CityCode,
		BarangayCode:          row.BarangayCode,
		ContactNo:             row.ContactNo,
		Citizenship:           row.Citizenship,
		PlaceOfBirth:          row.PlaceOfBirth,
		Religion:              row.Religion,
		Sex:                   row.Sex,
		CivilStatus:           row.CivilStatus,
		Height:                row.Height,
		Weight:                row.Weight,
		JobTitle:              row.JobTitle,
		Address:               row.Address,
		Email:                 row.Email,
		DailyRate:             row.DailyRate,
		Cola:                  row.Cola,
		DepartmentID:          row.DepartmentID,
		CompanyID:             row.CompanyID,
		EmploymentStatusID:    row.EmploymentStatusID,
		PhilHealth:            row.PhilHealth,
		SSS:                   row.SSS,
		PagIbig:               row.PagIbig,
		TINNumber:             row.TINNumber,
		EmergencyName:         row.EmergencyName,
		EmergencyRelationship: row.EmergencyRelationship,
		EmergencyNumber:       row.EmergencyNumber,
		Remarks:               row.Remarks,
		Notifications:         row.Notifications,
		UserImg:               row.UserImg,
		Type:                  row.Type,
		AddedBy:               row.AddedBy,
		DateAdded:             row.DateAdded,
		EmploymentRemarks:     row.EmploymentRemarks,
		AddedByName:           composeAddedByName(row),
	}

	if row.SubDepartmentID.Valid {
		v := int(row.SubDepartmentID.Int64)
		resp.SubDepartmentID = &v
	}
	if row.PositionName.Valid {
		v := row.PositionName.String
		resp.PositionName = &v
	}
	if row.DepartmentName.Valid {
		v := row.DepartmentName.String
		resp.DepartmentName = &v
	}
	if row.SubDepartmentName.Valid {
		v := row.SubDepartmentName.String
		resp.SubDepartmentName = &v
	}
	if row.EmploymentStatusName.Valid {
		v := row.EmploymentStatusName.String
		resp.EmploymentStatusName = &v
	}

	return resp
}

// composeAddedByName renders "First M. Last" for the creating employee, or
// "System" when the record was not created by one.
func composeAddedByName(row ProfileRow) string {
	if row.AddedBy == 0 {
		return "System"
	}
	name := row.AddedByFirstName.String
	if row.AddedByMiddleName.Valid && row.AddedByMiddleName.String != "" {
		name += " " + row.AddedByMiddleName.String + "."
	}
	name += " " + row.AddedByLastName.String
	return strings.TrimSpace(name)
}
