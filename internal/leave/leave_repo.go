package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// ReviewStamp records who decided a request and why it was rejected.
type ReviewStamp struct {
	ReviewerID      string
	ReviewerName    string
	RejectionReason *string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	MarkReviewed(ctx context.Context, id, targetStatus string, stamp ReviewStamp) (bool, error)
	MarkCancelled(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, employee_id, leave_type, start_date, end_date, days_count, reason,
	substitute_employee_id, status, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.DaysCount,
		l.Reason, l.SubstituteEmployeeID, l.Status, l.CreatedBy,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

// HasOverlappingPeriod tests the closed-interval overlap [a,b]∩[c,d] ≠ ∅
// against requests that still hold or may hold the period. Rejected and
// cancelled requests never block a new submission. On a tx-bound repository
// the count runs inside that transaction, same as the insert it guards.
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	if r.tx != nil {
		query := `
SELECT COUNT(*) FROM leave_requests
WHERE employee_id = $1
	AND status IN ('PENDING', 'APPROVED')
	AND NOT (end_date < $2 OR start_date > $3)
`
		var count int64
		if err := r.tx.QueryRowContext(ctx, query, employeeID, startDate, endDate).Scan(&count); err != nil {
			return false, err
		}
		return count > 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

// MarkReviewed performs the pending-guarded decision write. The status
// predicate makes concurrent decisions race-safe: exactly one caller sees a
// row update, every other caller gets false.
func (r *repository) MarkReviewed(ctx context.Context, id, targetStatus string, stamp ReviewStamp) (bool, error) {
	query := `
UPDATE leave_requests
SET
	status = $2,
	reviewed_by = $3,
	reviewed_by_name = $4,
	reviewed_at = NOW(),
	rejection_reason = $5,
	updated_at = NOW()
WHERE id = $1 AND status = 'PENDING'
`
	res, err := r.execer().ExecContext(
		ctx, query,
		id, targetStatus, stamp.ReviewerID, stamp.ReviewerName, stamp.RejectionReason,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) MarkCancelled(ctx context.Context, id string) (bool, error) {
	query := `
UPDATE leave_requests
SET status = 'CANCELLED', updated_at = NOW()
WHERE id = $1 AND status = 'PENDING'
`
	res, err := r.execer().ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
