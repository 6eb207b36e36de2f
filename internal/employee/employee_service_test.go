package employee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findAllFn     func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn    func(ctx context.Context, id string) (*employee.Employee, error)
	getHireDateFn func(ctx context.Context, id string) (time.Time, error)
	getFullNameFn func(ctx context.Context, id string) (string, error)
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetHireDate(ctx context.Context, id string) (time.Time, error) {
	if f.getHireDateFn != nil {
		return f.getHireDateFn(ctx, id)
	}
	return time.Time{}, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetFullName(ctx context.Context, id string) (string, error) {
	if f.getFullNameFn != nil {
		return f.getFullNameFn(ctx, id)
	}
	return "", gorm.ErrRecordNotFound
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findAllFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{
					{
						ID:       uuid.New(),
						FullName: "Ahmed Salah",
						Email:    "ahmed@example.com",
						HireDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}
		svc := employee.NewService(repo)

		resp, err := svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Ahmed Salah", resp[0].FullName)
		assert.Equal(t, "2024-02-01", resp[0].HireDate)
	})

	t.Run("negative repo error", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findAllFn: func(ctx context.Context) ([]employee.Employee, error) {
				return nil, errors.New("db error")
			},
		}
		svc := employee.NewService(repo)

		resp, err := svc.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, target string) (*employee.Employee, error) {
				assert.Equal(t, id.String(), target)
				return &employee.Employee{ID: id, FullName: "Mona Adel"}, nil
			},
		}
		svc := employee.NewService(repo)

		resp, err := svc.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "Mona Adel", resp.FullName)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(repo)

		_, err := svc.GetByID(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(repo)

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}
