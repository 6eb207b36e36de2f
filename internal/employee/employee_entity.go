package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee rows are owned by the external HR master-data system; this
// service only reads them.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string    `gorm:"type:varchar(150);not null"`
	Email      string    `gorm:"type:varchar(150);uniqueIndex:uq_employee_email"`
	Position   string    `gorm:"type:varchar(100)"`
	Department string    `gorm:"type:varchar(100)"`
	HireDate   time.Time `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
