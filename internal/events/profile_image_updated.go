package events

import "time"

const ProfileImageUpdatedTopic = "ess.profile.image_updated"

type ProfileImageUpdatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID int       `json:"employee_id"`
	Filename   string    `json:"filename"`
	OccurredAt time.Time `json:"occurred_at"`
}
