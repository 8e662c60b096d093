package employee

import "database/sql"

// ProfileRow is the scan target for the denormalized profile query: one
// employees row joined to its position, department, sub-department,
// employment status and the employee that created it. Joined columns are
// nullable because every join is LEFT.
type ProfileRow struct {
	EmpID                 int            `gorm:"column:emp_id"`
	FirstName             string         `gorm:"column:first_name"`
	LastName              string         `gorm:"column:last_name"`
	MiddleName            string         `gorm:"column:middle_name"`
	BirthDate             string         `gorm:"column:b_date"`
	DateHired             string         `gorm:"column:date_hired"`
	PermanentAddress      string         `gorm:"column:b_permanent_address"`
	StreetAddress         string         `gorm:"column:emp_street_address"`
	ProvinceCode          string         `gorm:"column:emp_province_code"`
	CityCode              string         `gorm:"column:emp_city_code"`
	BarangayCode          string         `gorm:"column:emp_barangay_code"`
	ContactNo             string         `gorm:"column:b_cont_no"`
	Citizenship           string         `gorm:"column:b_citizenship"`
	PlaceOfBirth          string         `gorm:"column:b_placebirth"`
	Religion              string         `gorm:"column:b_religion"`
	Sex                   string         `gorm:"column:b_sex"`
	CivilStatus           string         `gorm:"column:b_civil_status"`
	Height                string         `gorm:"column:b_height"`
	Weight                string         `gorm:"column:b_weight"`
	JobTitle              int            `gorm:"column:job_title"`
	Address               string         `gorm:"column:b_address"`
	Email                 string         `gorm:"column:b_email"`
	DailyRate             int            `gorm:"column:daily_rate"`
	Cola                  int            `gorm:"column:cola"`
	DepartmentID          int            `gorm:"column:b_department_id"`
	SubDepartmentID       sql.NullInt64  `gorm:"column:b_sub_department_id"`
	CompanyID             int            `gorm:"column:b_company_id"`
	EmploymentStatusID    int            `gorm:"column:b_employment_status_id"`
	PhilHealth            string         `gorm:"column:b_philhealth"`
	SSS                   string         `gorm:"column:b_sss"`
	PagIbig               string         `gorm:"column:b_pagibig"`
	TINNumber             string         `gorm:"column:b_tinnumber"`
	EmergencyName         string         `gorm:"column:emergency_contact_name"`
	EmergencyRelationship string         `gorm:"column:emergency_contact_relationship"`
	EmergencyNumber       string         `gorm:"column:emergency_contact_number"`
	Remarks               string         `gorm:"column:remarks"`
	Notifications         int            `gorm:"column:notifications"`
	UserImg               string         `gorm:"column:user_img"`
	Type                  string         `gorm:"column:type"`
	AddedBy               int            `gorm:"column:b_addedby"`
	DateAdded             string         `gorm:"column:b_dateadded"`
	EmploymentRemarks     string         `gorm:"column:employment_remarks"`
	PositionName          sql.NullString `gorm:"column:position_name"`
	DepartmentName        sql.NullString `gorm:"column:department_name"`
	SubDepartmentName     sql.NullString `gorm:"column:sub_department_name"`
	EmploymentStatusName  sql.NullString `gorm:"column:emp_stat_name"`
	AddedByFirstName      sql.NullString `gorm:"column:added_by_first_name"`
	AddedByLastName       sql.NullString `gorm:"column:added_by_last_name"`
	AddedByMiddleName     sql.NullString `gorm:"column:added_by_middle_name"`
}
