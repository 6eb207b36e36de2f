package employee

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	GetHireDate(ctx context.Context, id string) (time.Time, error)
	GetFullName(ctx context.Context, id string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) GetHireDate(ctx context.Context, id string) (time.Time, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Select("hire_date").
		First(&emp, "id = ?", id).Error
	return emp.HireDate, err
}

func (r *repository) GetFullName(ctx context.Context, id string) (string, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Select("full_name").
		First(&emp, "id = ?", id).Error
	return emp.FullName, err
}
