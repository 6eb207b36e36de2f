package penalty

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Penalty) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Penalty, error)
	FindByID(ctx context.Context, id string) (*Penalty, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, p *Penalty) error {
	query := `
INSERT INTO penalties (
	id, employee_id, date, kind, amount, reason, issued_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		p.ID, p.EmployeeID, p.Date, p.Kind, p.Amount, p.Reason, p.IssuedBy,
	)
	return err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Penalty, error) {
	var penalties []Penalty
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&penalties).Error
	return penalties, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Penalty, error) {
	var p Penalty
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.execer().ExecContext(ctx, `DELETE FROM penalties WHERE id = $1`, id)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
