package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequestedEventType = "leave_requested"
	LeaveApprovedEventType  = "leave_approved"
	LeaveRejectedEventType  = "leave_rejected"
	LeaveCancelledEventType = "leave_cancelled"
)

type LeaveRequestedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	DaysCount  int       `json:"days_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveDecidedEvent struct {
	EventType       string    `json:"event_type"`
	LeaveID         string    `json:"leave_id"`
	EmployeeID      string    `json:"employee_id"`
	Status          string    `json:"status"`
	ReviewedBy      string    `json:"reviewed_by,omitempty"`
	ReviewedByName  string    `json:"reviewed_by_name,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
