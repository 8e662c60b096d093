package leave

import "time"

// Application maps the legacy leave_applications table. Column names are
// kept as the mobile client and reporting queries expect them.
type Application struct {
	LeaveID     int       `gorm:"column:leave_id;primaryKey;autoIncrement"`
	UUID        string    `gorm:"column:uuid"`
	EmployeeID  int       `gorm:"column:leave_employee_id"`
	LeaveTypeID int       `gorm:"column:leave_type_id"`
	StartDate   string    `gorm:"column:start_date"`
	EndDate     string    `gorm:"column:end_date"`
	StartHalf   string    `gorm:"column:start_half"`
	EndHalf     string    `gorm:"column:end_half"`
	HalfType    string    `gorm:"column:half_type"`
	LeavePay    string    `gorm:"column:leave_pay"`
	Reason      string    `gorm:"column:reason"`
	Status      string    `gorm:"column:status"`
	AddedBy     int       `gorm:"column:leaveform_addedby"`
	Source      string    `gorm:"column:source"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Application) TableName() string {
	return "leave_applications"
}

type Type struct {
	LeaveTypeID   int    `gorm:"column:leave_type_id;primaryKey;autoIncrement"`
	LeaveTypeName string `gorm:"column:leave_type_name"`
}

func (Type) TableName() string {
	return "leave_type"
}
