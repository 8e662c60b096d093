package leave

import (
	"context"
	"database/sql"

	"ess-api/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, application *Application) error
	FindAllTypes(ctx context.Context) ([]Type, error)
	FindTypeName(ctx context.Context, leaveTypeID int) (string, error)
	CountTypes(ctx context.Context) (int64, error)
	SeedDefaultTypes(ctx context.Context, names []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on tx, so the insert
// commits or rolls back together with the caller's other writes.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, application *Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// FindAllTypes orders by the trimmed name so rows seeded with stray
// whitespace still sort where users expect them.
func (r *repository) FindAllTypes(ctx context.Context) ([]Type, error) {
	var types []Type
	err := r.db.WithContext(ctx).
		Order("TRIM(leave_type_name) ASC").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repository) FindTypeName(ctx context.Context, leaveTypeID int) (string, error) {
	var t Type
	res := r.db.WithContext(ctx).
		Where("leave_type_id = ?", leaveTypeID).
		Limit(1).
		Find(&t)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return t.LeaveTypeName, nil
}

func (r *repository) CountTypes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Type{}).Count(&count).Error
	return count, err
}

func (r *repository) SeedDefaultTypes(ctx context.Context, names []string) error {
	types := make([]Type, 0, len(names))
	for _, name := range names {
		types = append(types, Type{LeaveTypeName: name})
	}
	return r.db.WithContext(ctx).Create(&types).Error
}
