package rbac

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_role_name"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Role) TableName() string {
	return "roles"
}

type EmployeeRole struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time
}

func (EmployeeRole) TableName() string {
	return "employee_roles"
}

type RolePermission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoleID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Resource string    `gorm:"type:varchar(50);not null"`
	Action   string    `gorm:"type:varchar(50);not null"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
