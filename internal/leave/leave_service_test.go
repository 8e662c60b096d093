package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"ess-api/internal/events"
	"ess-api/internal/leave"
	leaveerrors "ess-api/internal/leave/errors"
	"ess-api/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn           func(tx *sql.Tx) leave.Repository
	createFn           func(ctx context.Context, application *leave.Application) error
	findAllTypesFn     func(ctx context.Context) ([]leave.Type, error)
	findTypeNameFn     func(ctx context.Context, leaveTypeID int) (string, error)
	countTypesFn       func(ctx context.Context) (int64, error)
	seedDefaultTypesFn func(ctx context.Context, names []string) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, application *leave.Application) error {
	if f.createFn != nil {
		return f.createFn(ctx, application)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllTypes(ctx context.Context) ([]leave.Type, error) {
	if f.findAllTypesFn != nil {
		return f.findAllTypesFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindTypeName(ctx context.Context, leaveTypeID int) (string, error) {
	if f.findTypeNameFn != nil {
		return f.findTypeNameFn(ctx, leaveTypeID)
	}
	return "", gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) CountTypes(ctx context.Context) (int64, error) {
	if f.countTypesFn != nil {
		return f.countTypesFn(ctx)
	}
	return 0, nil
}

func (f *fakeLeaveRepository) SeedDefaultTypes(ctx context.Context, names []string) error {
	if f.seedDefaultTypesFn != nil {
		return f.seedDefaultTypesFn(ctx, names)
	}
	return nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Apply_Validation(t *testing.T) {
	ctx := context.Background()

	repo := &fakeLeaveRepository{
		createFn: func(ctx context.Context, application *leave.Application) error {
			t.Fatal("create should not be called on validation failure")
			return nil
		},
	}
	svc := leave.NewService(nil, repo, nil)

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID: 42,
			StartDate:  "2024-03-10",
			EndDate:    "2024-03-12",
			Reason:     "dental appointment",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrMissingFields)
	})

	t.Run("blank reason", func(t *testing.T) {
		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID:  42,
			LeaveTypeID: 1,
			StartDate:   "2024-03-10",
			EndDate:     "2024-03-12",
			Reason:      "   ",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrMissingFields)
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID:  42,
			LeaveTypeID: 1,
			StartDate:   "10-03-2024",
			EndDate:     "2024-03-12",
			Reason:      "dental appointment",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDate)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID:  42,
			LeaveTypeID: 1,
			StartDate:   "2024-03-10",
			EndDate:     "2024-03-05",
			Reason:      "dental appointment",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrEndBeforeStart)
	})

	t.Run("format checked before ordering", func(t *testing.T) {
		// Both dates malformed and reversed: format wins.
		_, err := svc.Apply(ctx, leave.ApplyRequest{
			EmployeeID:  42,
			LeaveTypeID: 1,
			StartDate:   "2024/03/10",
			EndDate:     "2024/03/05",
			Reason:      "dental appointment",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDate)
	})
}

func TestLeaveService_Apply_Success(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	var created *leave.Application
	repo := &fakeLeaveRepository{
		createFn: func(ctx context.Context, application *leave.Application) error {
			application.LeaveID = 101
			created = application
			return nil
		},
		findTypeNameFn: func(ctx context.Context, leaveTypeID int) (string, error) {
			assert.Equal(t, 2, leaveTypeID)
			return "Sick Leave", nil
		},
	}
	outbox := &fakeOutboxRepository{
		createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
			assert.Equal(t, events.LeaveRequestedTopic, event.Topic)
			var payload events.LeaveRequestedEvent
			assert.NoError(t, json.Unmarshal(event.Payload, &payload))
			assert.Equal(t, 42, payload.EmployeeID)
			assert.Equal(t, "Sick Leave", payload.LeaveTypeName)
			assert.Equal(t, "pending", payload.Status)
			assert.Equal(t, "mobile", payload.Source)
			return nil
		},
	}
	svc := leave.NewServiceWithOutbox(db, repo, outbox, nil)

	expectTx(t, sqlMock, true)
	resp, err := svc.Apply(ctx, leave.ApplyRequest{
		EmployeeID:  42,
		LeaveTypeID: 2,
		StartDate:   "2024-03-10",
		EndDate:     "2024-03-12",
		Reason:      "family matters",
	})

	assert.NoError(t, err)
	assert.Equal(t, 101, resp.LeaveID)
	assert.Equal(t, 42, resp.EmployeeID)
	assert.Equal(t, 2, resp.LeaveTypeID)
	assert.Equal(t, "Sick Leave", resp.LeaveTypeName)
	assert.Equal(t, "2024-03-10", resp.StartDate)
	assert.Equal(t, "2024-03-12", resp.EndDate)
	assert.Equal(t, "family matters", resp.Reason)
	assert.Equal(t, "pending", resp.Status)
	assert.NotEmpty(t, resp.CreatedAt)
	_, uuidErr := uuid.Parse(resp.UUID)
	assert.NoError(t, uuidErr)

	if assert.NotNil(t, created) {
		assert.Equal(t, "none", created.StartHalf)
		assert.Equal(t, "none", created.EndHalf)
		assert.Equal(t, "none", created.HalfType)
		assert.Equal(t, "paid", created.LeavePay)
		assert.Equal(t, "mobile", created.Source)
		assert.Equal(t, 42, created.AddedBy)
	}
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// openGORM binds a gorm handle to the sqlmock pool without any handshake
// queries.
func openGORM(t *testing.T, db *sql.DB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb
}

func TestLeaveService_Apply_WritesShareTransaction(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := leave.NewRepository(openGORM(t, db))
	outbox := kafka.NewOutboxRepository(db)
	svc := leave.NewServiceWithOutbox(db, repo, outbox, nil)

	// One ordered conversation: the application insert, the type lookup
	// and the outbox insert all run between the same Begin and Commit,
	// with no transaction of their own.
	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `leave_applications`").
		WillReturnResult(sqlmock.NewResult(101, 1))
	sqlMock.ExpectQuery("SELECT (.+) FROM `leave_type`").
		WillReturnRows(sqlmock.NewRows([]string{"leave_type_id", "leave_type_name"}).
			AddRow(2, "Sick Leave"))
	sqlMock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	resp, err := svc.Apply(ctx, leave.ApplyRequest{
		EmployeeID:  42,
		LeaveTypeID: 2,
		StartDate:   "2024-03-10",
		EndDate:     "2024-03-12",
		Reason:      "family matters",
	})

	assert.NoError(t, err)
	assert.Equal(t, 101, resp.LeaveID)
	assert.Equal(t, "Sick Leave", resp.LeaveTypeName)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Apply_OutboxFailureRollsBackInsert(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := leave.NewRepository(openGORM(t, db))
	outbox := kafka.NewOutboxRepository(db)
	svc := leave.NewServiceWithOutbox(db, repo, outbox, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `leave_applications`").
		WillReturnResult(sqlmock.NewResult(101, 1))
	sqlMock.ExpectQuery("SELECT (.+) FROM `leave_type`").
		WillReturnRows(sqlmock.NewRows([]string{"leave_type_id", "leave_type_name"}).
			AddRow(2, "Sick Leave"))
	sqlMock.ExpectExec("INSERT INTO outbox_events").
		WillReturnError(errors.New("outbox unavailable"))
	sqlMock.ExpectRollback()

	_, err = svc.Apply(ctx, leave.ApplyRequest{
		EmployeeID:  42,
		LeaveTypeID: 2,
		StartDate:   "2024-03-10",
		EndDate:     "2024-03-12",
		Reason:      "family matters",
	})

	assert.Error(t, err)
	// The rollback expectation proves the application insert died with
	// the transaction instead of committing on a pool connection.
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Apply_SingleDay(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := leave.NewService(db, &fakeLeaveRepository{}, nil)

	// start == end is a valid one-day leave.
	expectTx(t, sqlMock, true)
	resp, err := svc.Apply(ctx, leave.ApplyRequest{
		EmployeeID:  42,
		LeaveTypeID: 1,
		StartDate:   "2024-03-10",
		EndDate:     "2024-03-10",
		Reason:      "moving day",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	// Unknown type id stays blank rather than failing the request.
	assert.Equal(t, "", resp.LeaveTypeName)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Types(t *testing.T) {
	ctx := context.Background()

	repo := &fakeLeaveRepository{
		findAllTypesFn: func(ctx context.Context) ([]leave.Type, error) {
			return []leave.Type{
				{LeaveTypeID: 4, LeaveTypeName: "Maternity Leave"},
				{LeaveTypeID: 5, LeaveTypeName: "Paternity Leave"},
				{LeaveTypeID: 3, LeaveTypeName: " Personal Leave "},
				{LeaveTypeID: 2, LeaveTypeName: "Sick Leave"},
				{LeaveTypeID: 1, LeaveTypeName: "Vacation Leave"},
			}, nil
		},
	}
	svc := leave.NewService(nil, repo, nil)

	types, err := svc.Types(ctx)

	assert.NoError(t, err)
	assert.Len(t, types, 5)
	assert.Equal(t, "Personal Leave", types[2].LeaveTypeName)
}
