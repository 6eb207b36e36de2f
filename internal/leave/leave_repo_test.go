package leave_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLeaveRepository_HasOverlappingPeriod(t *testing.T) {
	t.Run("success counts through the bound transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		employeeID := uuid.New().String()
		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 4)

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(employeeID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		repo := leave.NewRepository(nil, db).WithTx(tx)
		overlapping, err := repo.HasOverlappingPeriod(context.Background(), employeeID, start, end)

		assert.NoError(t, err)
		assert.True(t, overlapping)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success reports no overlap", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		employeeID := uuid.New().String()
		start := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 2)

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(employeeID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		repo := leave.NewRepository(nil, db).WithTx(tx)
		overlapping, err := repo.HasOverlappingPeriod(context.Background(), employeeID, start, end)

		assert.NoError(t, err)
		assert.False(t, overlapping)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
