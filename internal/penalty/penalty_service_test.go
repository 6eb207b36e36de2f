package penalty_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-leave/internal/penalty"
	penaltyerrors "go-leave/internal/penalty/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePenaltyRepository struct {
	createFn            func(ctx context.Context, p *penalty.Penalty) error
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]penalty.Penalty, error)
	findByIDFn          func(ctx context.Context, id string) (*penalty.Penalty, error)
	deleteFn            func(ctx context.Context, id string) error
}

func (f *fakePenaltyRepository) WithTx(tx *sql.Tx) penalty.Repository {
	return f
}

func (f *fakePenaltyRepository) Create(ctx context.Context, p *penalty.Penalty) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePenaltyRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]penalty.Penalty, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePenaltyRepository) FindByID(ctx context.Context, id string) (*penalty.Penalty, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePenaltyRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type penaltyServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service penalty.Service
	repo    *fakePenaltyRepository
}

func setupPenaltyServiceTest(t *testing.T) *penaltyServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePenaltyRepository{}
	svc := penalty.NewService(db, repo)

	return &penaltyServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func TestPenaltyService_Create(t *testing.T) {
	ctx := context.Background()
	issuerID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupPenaltyServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.createFn = func(ctx context.Context, p *penalty.Penalty) error {
			assert.Equal(t, uuid.MustParse(employeeID), p.EmployeeID)
			assert.Equal(t, uuid.MustParse(issuerID), p.IssuedBy)
			assert.Equal(t, penalty.KindDeduction, p.Kind)
			assert.Equal(t, 250.0, p.Amount)
			return nil
		}

		resp, err := deps.service.Create(ctx, issuerID, penalty.CreatePenaltyRequest{
			EmployeeID: employeeID,
			Date:       "2026-02-10",
			Kind:       penalty.KindDeduction,
			Amount:     250,
			Reason:     "Unexcused absence",
		})

		assert.NoError(t, err)
		assert.Equal(t, "2026-02-10", resp.Date)
		assert.Equal(t, 250.0, resp.Amount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative bad date", func(t *testing.T) {
		deps := setupPenaltyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, issuerID, penalty.CreatePenaltyRequest{
			EmployeeID: employeeID,
			Date:       "10/02/2026",
			Kind:       penalty.KindWarning,
			Reason:     "Late arrival",
		})

		assert.ErrorIs(t, err, penaltyerrors.ErrInvalidDateFormat)
	})

	t.Run("negative amount", func(t *testing.T) {
		deps := setupPenaltyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, issuerID, penalty.CreatePenaltyRequest{
			EmployeeID: employeeID,
			Date:       "2026-02-10",
			Kind:       penalty.KindDeduction,
			Amount:     -10,
			Reason:     "Late arrival",
		})

		assert.ErrorIs(t, err, penaltyerrors.ErrInvalidAmount)
	})
}

func TestPenaltyService_GetAllByEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupPenaltyServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]penalty.Penalty, error) {
			return []penalty.Penalty{
				{
					ID:         uuid.New(),
					EmployeeID: employeeID,
					Date:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
					Kind:       penalty.KindWarning,
					Reason:     "Late arrival",
					IssuedBy:   uuid.New(),
				},
			}, nil
		}

		resp, err := deps.service.GetAllByEmployee(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, penalty.KindWarning, resp[0].Kind)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		deps := setupPenaltyServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetAllByEmployee(ctx, "nope")

		assert.ErrorIs(t, err, penaltyerrors.ErrInvalidEmployeeID)
	})
}

func TestPenaltyService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupPenaltyServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, target string) (*penalty.Penalty, error) {
			return &penalty.Penalty{ID: id, EmployeeID: uuid.New()}, nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupPenaltyServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, penaltyerrors.ErrPenaltyNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
