package balance

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// bucketColumns maps a tracked leave type to its column prefix. Only values
// from this map ever reach the SQL below.
var bucketColumns = map[string]string{
	"ANNUAL":    "annual",
	"SICK":      "sick",
	"EMERGENCY": "emergency",
}

// Tracked reports whether a leave type debits a balance bucket. UNPAID and
// OTHER leave is not balance-accounted.
func Tracked(leaveType string) bool {
	_, ok := bucketColumns[leaveType]
	return ok
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*LeaveBalance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	Provision(ctx context.Context, b *LeaveBalance) error
	Debit(ctx context.Context, employeeID string, year int, leaveType string, days int, allowNegative bool) (bool, error)
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

func (r *repository) FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC").
		Find(&balances).Error
	return balances, err
}

// Provision inserts the row if it does not exist yet; an existing row is
// left untouched so repeated submissions never reset counters.
func (r *repository) Provision(ctx context.Context, b *LeaveBalance) error {
	query := `
INSERT INTO leave_balances (
	id, employee_id, year,
	annual_total, annual_used, annual_remaining,
	sick_total, sick_used, sick_remaining,
	emergency_total, emergency_used, emergency_remaining,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, 0, $4, $5, 0, $5, $6, 0, $6, NOW(), NOW())
ON CONFLICT (employee_id, year) DO NOTHING
`
	_, err := r.execer().ExecContext(
		ctx, query,
		b.ID, b.EmployeeID, b.Year,
		b.AnnualTotal, b.SickTotal, b.EmergencyTotal,
	)
	return err
}

// Debit adds days to the bucket's used counter and rederives remaining in a
// single conditional statement. With allowNegative false the statement
// refuses to drive remaining below zero and reports false.
func (r *repository) Debit(ctx context.Context, employeeID string, year int, leaveType string, days int, allowNegative bool) (bool, error) {
	col, ok := bucketColumns[leaveType]
	if !ok {
		return false, fmt.Errorf("leave type %s has no balance bucket", leaveType)
	}

	query := fmt.Sprintf(`
UPDATE leave_balances
SET
	%[1]s_used = %[1]s_used + $3,
	%[1]s_remaining = %[1]s_total - (%[1]s_used + $3),
	updated_at = NOW()
WHERE employee_id = $1 AND year = $2
`, col)
	if !allowNegative {
		query += fmt.Sprintf("	AND %[1]s_remaining >= $3\n", col)
	}

	res, err := r.execer().ExecContext(ctx, query, employeeID, year, days)
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
