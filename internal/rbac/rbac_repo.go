package rbac

import (
	"gorm.io/gorm"
)

type Repository interface {
	GetEmployeeRoles() ([]EmployeeRole, error)
	GetRolePermissions() ([]RolePermission, error)
	ListRoles() ([]Role, error)
	CreateRole(role *Role) error
	GrantRole(grant *EmployeeRole) error
	PermissionsByRole(roleID string) ([]RolePermission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEmployeeRoles() ([]EmployeeRole, error) {
	var grants []EmployeeRole
	err := r.db.Find(&grants).Error
	return grants, err
}

func (r *repository) GetRolePermissions() ([]RolePermission, error) {
	var perms []RolePermission
	err := r.db.Find(&perms).Error
	return perms, err
}

func (r *repository) ListRoles() ([]Role, error) {
	var roles []Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *repository) CreateRole(role *Role) error {
	return r.db.Create(role).Error
}

func (r *repository) GrantRole(grant *EmployeeRole) error {
	return r.db.Create(grant).Error
}

func (r *repository) PermissionsByRole(roleID string) ([]RolePermission, error) {
	var perms []RolePermission
	err := r.db.Where("role_id = ?", roleID).Find(&perms).Error
	return perms, err
}
