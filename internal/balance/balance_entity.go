package balance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance keeps one row per (employee, year). Rows are created lazily
// on the first eligible request or an explicit provisioning call, mutated
// only by the approval workflow, and never deleted.
type LeaveBalance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_employee_year"`
	Year       int       `gorm:"not null;uniqueIndex:uq_balance_employee_year"`

	AnnualTotal     int `gorm:"not null;default:0"`
	AnnualUsed      int `gorm:"not null;default:0"`
	AnnualRemaining int `gorm:"not null;default:0"`

	SickTotal     int `gorm:"not null;default:0"`
	SickUsed      int `gorm:"not null;default:0"`
	SickRemaining int `gorm:"not null;default:0"`

	EmergencyTotal     int `gorm:"not null;default:0"`
	EmergencyUsed      int `gorm:"not null;default:0"`
	EmergencyRemaining int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Allotments holds the default yearly totals used when a balance row is
// provisioned for the first time.
type Allotments struct {
	Annual    int
	Sick      int
	Emergency int
}
