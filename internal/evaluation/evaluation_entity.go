package evaluation

import (
	"time"

	"github.com/google/uuid"
)

type Evaluation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_evaluations_employee_period"`

	Year  int `gorm:"type:int;not null;uniqueIndex:uq_evaluations_employee_period"`
	Month int `gorm:"type:int;not null;uniqueIndex:uq_evaluations_employee_period"`

	Score int    `gorm:"type:int;not null"`
	Grade string `gorm:"type:varchar(2);not null"`
	Notes string `gorm:"type:text"`

	EvaluatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// GradeFor maps a 0-100 score onto the letter scale used on review forms.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
