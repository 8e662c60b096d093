package employee

// ProfileResponse is the denormalized employee record returned by both
// login and the profile read. Field names are the wire contract inherited
// from the schema; joined names are pointers because every join is LEFT.
type ProfileResponse struct {
	EmpID                 int     `json:"emp_id"`
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	MiddleName            string  `json:"middle_name"`
	BirthDate             string  `json:"b_date"`
	DateHired             string  `json:"date_hired"`
	PermanentAddress      string  `json:"b_permanent_address"`
	StreetAddress         string  `json:"emp_street_address"`
	ProvinceCode          string  `json:"emp_province_code"`
	CityCode              string  `json:"emp_city_code"`
	BarangayCode          string  `json:"emp_barangay_code"`
	ContactNo             string  `json:"b_cont_no"`
	Citizenship           string  `json:"b_citizenship"`
	PlaceOfBirth          string  `json:"b_placebirth"`
	Religion              string  `json:"b_religion"`
	Sex                   string  `json:"b_sex"`
	CivilStatus           string  `json:"b_civil_status"`
	Height                string  `json:"b_height"`
	Weight                string  `json:"b_weight"`
	JobTitle              int     `json:"job_title"`
	Address               string  `json:"b_address"`
	Email                 string  `json:"b_email"`
	DailyRate             int     `json:"daily_rate"`
	Cola                  int     `json:"cola"`
	DepartmentID          int     `json:"b_department_id"`
	SubDepartmentID       *int    `json:"b_sub_department_id"`
	CompanyID             int     `json:"b_company_id"`
	EmploymentStatusID    int     `json:"b_employment_status_id"`
	PhilHealth            string  `json:"b_philhealth"`
	SSS                   string  `json:"b_sss"`
	PagIbig               string  `json:"b_pagibig"`
	TINNumber             string  `json:"b_tinnumber"`
	EmergencyName         string  `json:"emergency_contact_name"`
	EmergencyRelationship string  `json:"emergency_contact_relationship"`
	EmergencyNumber       string  `json:"emergency_contact_number"`
	Remarks               string  `json:"remarks"`
	Notifications         int     `json:"notifications"`
	UserImg               string  `json:"user_img"`
	Type                  string  `json:"type"`
	AddedBy               int     `json:"b_addedby"`
	DateAdded             string  `json:"b_dateadded"`
	EmploymentRemarks     string  `json:"employment_remarks"`
	AddedByName           string  `json:"added_by_name"`
	PositionName          *string `json:"position_name"`
	DepartmentName        *string `json:"department_name"`
	SubDepartmentName     *string `json:"sub_department_name"`
	EmploymentStatusName  *string `json:"employment_status_name"`
}

type UpdateImageRequest struct {
	EmpID   int    `json:"emp_id"`
	UserImg string `json:"user_img"`
}

type UpdateContactRequest struct {
	EmpID                 int    `json:"emp_id"`
	ContactNo             string `json:"b_cont_no"`
	Email                 string `json:"b_email"`
	StreetAddress         string `json:"emp_street_address"`
	EmergencyName         string `json:"emergency_contact_name"`
	EmergencyRelationship string `json:"emergency_contact_relationship"`
	EmergencyNumber       string `json:"emergency_contact_number"`
}
