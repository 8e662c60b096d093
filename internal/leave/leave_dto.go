package leave

type ApplyRequest struct {
	EmployeeID  int    `json:"employee_id"`
	LeaveTypeID int    `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

type ApplyResponse struct {
	LeaveID       int    `json:"leave_id"`
	UUID          string `json:"uuid"`
	EmployeeID    int    `json:"employee_id"`
	LeaveTypeID   int    `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type TypeResponse struct {
	LeaveTypeID   int    `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
}
