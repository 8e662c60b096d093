package events

import "time"

const LeaveRequestedTopic = "ess.leave.requested"

type LeaveRequestedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveUUID     string    `json:"leave_uuid"`
	EmployeeID    int       `json:"employee_id"`
	LeaveTypeID   int       `json:"leave_type_id"`
	LeaveTypeName string    `json:"leave_type_name,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	Source        string    `json:"source"`
	OccurredAt    time.Time `json:"occurred_at"`
}
