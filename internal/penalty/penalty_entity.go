package penalty

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindWarning    = "WARNING"
	KindDeduction  = "DEDUCTION"
	KindSuspension = "SUSPENSION"
)

type Penalty struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_penalties_employee"`

	Date   time.Time `gorm:"type:date;not null"`
	Kind   string    `gorm:"type:varchar(30);not null"`
	Amount float64   `gorm:"type:numeric(12,2);not null;default:0"`
	Reason string    `gorm:"type:text;not null"`

	IssuedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Penalty) TableName() string {
	return "penalties"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
