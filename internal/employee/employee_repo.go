package employee

import (
	"context"
	"database/sql"

	"ess-api/internal/shared/connection"

	"gorm.io/gorm"
)

// profileQuery mirrors the one denormalized read both login and the profile
// endpoint answer with. Reference tables are only ever reached through
// these joins; they have no endpoints of their own.
const profileQuery = `
SELECT e.emp_id, e.first_name, e.last_name, e.middle_name, e.b_date, e.date_hired,
       e.b_permanent_address, e.emp_street_address, e.emp_province_code, e.emp_city_code, e.emp_barangay_code,
       e.b_cont_no, e.b_citizenship, e.b_placebirth, e.b_religion, e.b_sex, e.b_civil_status,
       e.b_height, e.b_weight, e.job_title, e.b_address, e.b_email, e.daily_rate, e.cola,
       e.b_department_id, e.b_sub_department_id, e.b_company_id, e.b_employment_status_id,
       e.b_philhealth, e.b_sss, e.b_pagibig, e.b_tinnumber, e.emergency_contact_name,
       e.emergency_contact_relationship, e.emergency_contact_number, e.remarks,
       e.notifications, e.user_img, e.type, e.b_addedby, e.b_dateadded, e.employment_remarks,
       p.position_name,
       d.department_name,
       sd.sub_department_name,
       es.emp_stat_name,
       added_by_emp.first_name AS added_by_first_name,
       added_by_emp.last_name AS added_by_last_name,
       added_by_emp.middle_name AS added_by_middle_name
FROM employees e
LEFT JOIN position p ON p.pos_id = e.job_title
LEFT JOIN department d ON d.dept_id = e.b_department_id
LEFT JOIN sub_department sd ON sd.sub_depart_id = e.b_sub_department_id
LEFT JOIN employment_status es ON es.emp_stat_id = e.b_employment_status_id
LEFT JOIN employees added_by_emp ON added_by_emp.emp_id = e.b_addedby
WHERE e.emp_id = ?
LIMIT 1
`

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindProfileByID(ctx context.Context, empID int) (*ProfileRow, error)
	UpdateImage(ctx context.Context, empID int, filename string) (int64, error)
	UpdateContact(ctx context.Context, empID int, fields map[string]any) (int64, error)
	FindPayFields(ctx context.Context, empID int) (PayFields, error)
}

// PayFields is the slice of the employee row the payslip module computes
// from.
type PayFields struct {
	EmpID     int    `gorm:"column:emp_id"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	DailyRate int    `gorm:"column:daily_rate"`
	Cola      int    `gorm:"column:cola"`
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on tx, so the image
// update commits or rolls back together with the outbox insert.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) FindProfileByID(ctx context.Context, empID int) (*ProfileRow, error) {
	var row ProfileRow
	res := r.db.WithContext(ctx).Raw(profileQuery, empID).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) UpdateImage(ctx context.Context, empID int, filename string) (int64, error) {
	res := r.db.WithContext(ctx).
		Table("employees").
		Where("emp_id = ?", empID).
		Update("user_img", filename)
	return res.RowsAffected, res.Error
}

// UpdateContact writes only whitelisted mutable columns; fields carries
// column name to value.
func (r *repository) UpdateContact(ctx context.Context, empID int, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Table("employees").
		Where("emp_id = ?", empID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repository) FindPayFields(ctx context.Context, empID int) (PayFields, error) {
	var row PayFields
	res := r.db.WithContext(ctx).
		Raw(`SELECT emp_id, first_name, last_name, daily_rate, cola FROM employees WHERE emp_id = ? LIMIT 1`, empID).
		Scan(&row)
	if res.Error != nil {
		return PayFields{}, res.Error
	}
	if res.RowsAffected == 0 {
		return PayFields{}, gorm.ErrRecordNotFound
	}
	return row, nil
}
