package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAnnual    = "ANNUAL"
	TypeSick      = "SICK"
	TypeEmergency = "EMERGENCY"
	TypeUnpaid    = "UNPAID"
	TypeOther     = "OTHER"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// LeaveRequest is immutable history once decided: reviewer fields are set
// exactly once by the approval workflow and the row is never edited after.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	DaysCount int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text;not null"`

	SubstituteEmployeeID *uuid.UUID `gorm:"type:uuid"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	RejectionReason *string    `gorm:"type:text"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedByName  *string    `gorm:"type:varchar(150)"`
	ReviewedAt      *time.Time `gorm:"type:timestamptz"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// InclusiveDays counts calendar days between two dates, both ends included,
// so a request covering a single day counts as one.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Terminal reports whether no further transition is allowed from a status.
func Terminal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}
