package report

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type statusCountRow struct {
	Status string
	Count  int
}

type typeDaysRow struct {
	LeaveType string
	Days      int
}

type evaluationStatsRow struct {
	Count        int
	AverageScore float64
}

type latestEvaluationRow struct {
	Score int
	Grade string
	Year  int
	Month int
}

type penaltyStatsRow struct {
	Count       int
	TotalAmount float64
}

type Repository interface {
	EmployeeName(ctx context.Context, employeeID string) (string, error)
	LeaveStatusCounts(ctx context.Context, employeeID string, year int) (map[string]int, error)
	ApprovedDaysByType(ctx context.Context, employeeID string, year int) (map[string]int, error)
	BalanceSnapshot(ctx context.Context, employeeID string, year int) (BalanceSnapshot, error)
	EvaluationStats(ctx context.Context, employeeID string, year int) (EvaluationSummary, error)
	PenaltyStats(ctx context.Context, employeeID string, year int) (PenaltySummary, error)
	SystemLeaveStatusCounts(ctx context.Context, year int) (map[string]int, error)
	SystemApprovedDays(ctx context.Context, year int) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// EmployeeName returns an empty string for an unknown employee so callers
// can still produce a zeroed report.
func (r *repository) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).Raw(`
		SELECT full_name FROM employees
		WHERE id = ? AND deleted_at IS NULL
	`, employeeID).Scan(&name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return name, err
}

func (r *repository) LeaveStatusCounts(ctx context.Context, employeeID string, year int) (map[string]int, error) {
	var rows []statusCountRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM leave_requests
		WHERE employee_id = ? AND EXTRACT(YEAR FROM start_date) = ?
		GROUP BY status
	`, employeeID, year).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return statusMap(rows), nil
}

func (r *repository) ApprovedDaysByType(ctx context.Context, employeeID string, year int) (map[string]int, error) {
	var rows []typeDaysRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT leave_type, COALESCE(SUM(days_count), 0) AS days
		FROM leave_requests
		WHERE employee_id = ? AND EXTRACT(YEAR FROM start_date) = ? AND status = 'APPROVED'
		GROUP BY leave_type
	`, employeeID, year).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.LeaveType] = row.Days
	}
	return result, nil
}

func (r *repository) BalanceSnapshot(ctx context.Context, employeeID string, year int) (BalanceSnapshot, error) {
	var snap BalanceSnapshot
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			annual_total, annual_used, annual_remaining,
			sick_total, sick_used, sick_remaining,
			emergency_total, emergency_used, emergency_remaining
		FROM leave_balances
		WHERE employee_id = ? AND year = ?
	`, employeeID, year).Scan(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BalanceSnapshot{}, nil
	}
	return snap, err
}

func (r *repository) EvaluationStats(ctx context.Context, employeeID string, year int) (EvaluationSummary, error) {
	var stats evaluationStatsRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS count, COALESCE(AVG(score), 0) AS average_score
		FROM evaluations
		WHERE employee_id = ? AND year = ?
	`, employeeID, year).Scan(&stats).Error
	if err != nil {
		return EvaluationSummary{}, err
	}

	summary := EvaluationSummary{
		Count:        stats.Count,
		AverageScore: stats.AverageScore,
	}
	if stats.Count == 0 {
		return summary, nil
	}

	var latest latestEvaluationRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT score, grade, year, month
		FROM evaluations
		WHERE employee_id = ?
		ORDER BY year DESC, month DESC, created_at DESC
		LIMIT 1
	`, employeeID).Scan(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EvaluationSummary{}, err
	}

	summary.LatestScore = latest.Score
	summary.LatestGrade = latest.Grade
	summary.LatestYear = latest.Year
	summary.LatestMonth = latest.Month
	return summary, nil
}

func (r *repository) PenaltyStats(ctx context.Context, employeeID string, year int) (PenaltySummary, error) {
	var stats penaltyStatsRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount
		FROM penalties
		WHERE employee_id = ? AND EXTRACT(YEAR FROM date) = ?
	`, employeeID, year).Scan(&stats).Error
	if err != nil {
		return PenaltySummary{}, err
	}
	return PenaltySummary{Count: stats.Count, TotalAmount: stats.TotalAmount}, nil
}

func (r *repository) SystemLeaveStatusCounts(ctx context.Context, year int) (map[string]int, error) {
	var rows []statusCountRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM leave_requests
		WHERE EXTRACT(YEAR FROM start_date) = ?
		GROUP BY status
	`, year).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return statusMap(rows), nil
}

func (r *repository) SystemApprovedDays(ctx context.Context, year int) (int, error) {
	var days int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(days_count), 0)
		FROM leave_requests
		WHERE EXTRACT(YEAR FROM start_date) = ? AND status = 'APPROVED'
	`, year).Scan(&days).Error
	return days, err
}

func statusMap(rows []statusCountRow) map[string]int {
	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result
}
