package leave_test

import (
	"testing"
	"time"

	"go-leave/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestEligibleAt(t *testing.T) {
	hireDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("day before six months", func(t *testing.T) {
		now := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
		assert.False(t, leave.EligibleAt(hireDate, now))
	})

	t.Run("exactly six months", func(t *testing.T) {
		now := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
		assert.True(t, leave.EligibleAt(hireDate, now))
	})

	t.Run("well past six months", func(t *testing.T) {
		now := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.True(t, leave.EligibleAt(hireDate, now))
	})

	t.Run("zero hire date fails closed", func(t *testing.T) {
		now := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
		assert.False(t, leave.EligibleAt(time.Time{}, now))
	})
}

func TestInclusiveDays(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 1, leave.InclusiveDays(d, d))
	})

	t.Run("full week", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 7, leave.InclusiveDays(start, end))
	})

	t.Run("across month boundary", func(t *testing.T) {
		start := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 4, leave.InclusiveDays(start, end))
	})
}

func TestTerminal(t *testing.T) {
	assert.False(t, leave.Terminal(leave.StatusPending))
	assert.True(t, leave.Terminal(leave.StatusApproved))
	assert.True(t, leave.Terminal(leave.StatusRejected))
	assert.True(t, leave.Terminal(leave.StatusCancelled))
}
