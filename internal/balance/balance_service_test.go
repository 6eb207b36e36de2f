package balance_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	findByEmployeeAndYearFn func(ctx context.Context, employeeID string, year int) (*balance.LeaveBalance, error)
	findAllByEmployeeFn     func(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error)
	provisionFn             func(ctx context.Context, b *balance.LeaveBalance) error
	debitFn                 func(ctx context.Context, employeeID string, year int, leaveType string, days int, allowNegative bool) (bool, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository {
	return f
}

func (f *fakeBalanceRepository) FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*balance.LeaveBalance, error) {
	if f.findByEmployeeAndYearFn != nil {
		return f.findByEmployeeAndYearFn(ctx, employeeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) Provision(ctx context.Context, b *balance.LeaveBalance) error {
	if f.provisionFn != nil {
		return f.provisionFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Debit(ctx context.Context, employeeID string, year int, leaveType string, days int, allowNegative bool) (bool, error) {
	if f.debitFn != nil {
		return f.debitFn(ctx, employeeID, year, leaveType, days, allowNegative)
	}
	return true, nil
}

func testAllotments() balance.Allotments {
	return balance.Allotments{Annual: 21, Sick: 15, Emergency: 7}
}

func TestBalanceService_GetByEmployeeAndYear(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findByEmployeeAndYearFn: func(ctx context.Context, eid string, year int) (*balance.LeaveBalance, error) {
				assert.Equal(t, employeeID.String(), eid)
				assert.Equal(t, 2026, year)
				return &balance.LeaveBalance{
					ID:              uuid.New(),
					EmployeeID:      employeeID,
					Year:            2026,
					AnnualTotal:     21,
					AnnualUsed:      3,
					AnnualRemaining: 18,
					SickTotal:       15,
					SickRemaining:   15,
				}, nil
			},
		}
		svc := balance.NewService(repo, testAllotments())

		resp, err := svc.GetByEmployeeAndYear(ctx, employeeID.String(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, 18, resp.AnnualRemaining)
		assert.Equal(t, 3, resp.AnnualUsed)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeBalanceRepository{}
		svc := balance.NewService(repo, testAllotments())

		_, err := svc.GetByEmployeeAndYear(ctx, employeeID.String(), 2026)

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		repo := &fakeBalanceRepository{}
		svc := balance.NewService(repo, testAllotments())

		_, err := svc.GetByEmployeeAndYear(ctx, "not-a-uuid", 2026)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidEmployeeID)
	})
}

func TestBalanceService_Provision(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success applies default allotments", func(t *testing.T) {
		stored := &balance.LeaveBalance{
			ID:                 uuid.New(),
			EmployeeID:         employeeID,
			Year:               2026,
			AnnualTotal:        21,
			AnnualRemaining:    21,
			SickTotal:          15,
			SickRemaining:      15,
			EmergencyTotal:     7,
			EmergencyRemaining: 7,
		}

		repo := &fakeBalanceRepository{
			provisionFn: func(ctx context.Context, b *balance.LeaveBalance) error {
				assert.Equal(t, 21, b.AnnualTotal)
				assert.Equal(t, 15, b.SickTotal)
				assert.Equal(t, 7, b.EmergencyTotal)
				return nil
			},
			findByEmployeeAndYearFn: func(ctx context.Context, eid string, year int) (*balance.LeaveBalance, error) {
				return stored, nil
			},
		}
		svc := balance.NewService(repo, testAllotments())

		resp, err := svc.Provision(ctx, balance.ProvisionBalanceRequest{
			EmployeeID: employeeID.String(),
			Year:       2026,
		})

		assert.NoError(t, err)
		assert.Equal(t, 21, resp.AnnualRemaining)
		assert.Equal(t, 7, resp.EmergencyRemaining)
	})

	t.Run("existing row is returned unchanged", func(t *testing.T) {
		// The upsert is a no-op for an existing row; the read-back must
		// surface the original counters, not the defaults.
		stored := &balance.LeaveBalance{
			ID:              uuid.New(),
			EmployeeID:      employeeID,
			Year:            2026,
			AnnualTotal:     21,
			AnnualUsed:      10,
			AnnualRemaining: 11,
		}

		repo := &fakeBalanceRepository{
			findByEmployeeAndYearFn: func(ctx context.Context, eid string, year int) (*balance.LeaveBalance, error) {
				return stored, nil
			},
		}
		svc := balance.NewService(repo, testAllotments())

		resp, err := svc.Provision(ctx, balance.ProvisionBalanceRequest{
			EmployeeID: employeeID.String(),
			Year:       2026,
		})

		assert.NoError(t, err)
		assert.Equal(t, 10, resp.AnnualUsed)
		assert.Equal(t, 11, resp.AnnualRemaining)
	})
}

func TestTracked(t *testing.T) {
	assert.True(t, balance.Tracked("ANNUAL"))
	assert.True(t, balance.Tracked("SICK"))
	assert.True(t, balance.Tracked("EMERGENCY"))
	assert.False(t, balance.Tracked("UNPAID"))
	assert.False(t, balance.Tracked("OTHER"))
}
