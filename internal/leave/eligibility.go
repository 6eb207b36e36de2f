package leave

import (
	"context"
	"time"
)

// MinimumTenureMonths is the tenure gate for submitting any leave request.
const MinimumTenureMonths = 6

// Directory resolves employee master data owned by the external HR system.
type Directory interface {
	GetHireDate(ctx context.Context, employeeID string) (time.Time, error)
	GetFullName(ctx context.Context, employeeID string) (string, error)
}

// EligibleAt reports whether an employee hired on hireDate may submit leave
// requests as of now. A zero hire date fails closed.
func EligibleAt(hireDate, now time.Time) bool {
	if hireDate.IsZero() {
		return false
	}
	return !now.Before(hireDate.AddDate(0, MinimumTenureMonths, 0))
}
