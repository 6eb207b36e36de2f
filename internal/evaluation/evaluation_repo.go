package evaluation

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Evaluation) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error)
	FindByID(ctx context.Context, id string) (*Evaluation, error)
	Update(ctx context.Context, e *Evaluation) error
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

func (r *repository) Create(ctx context.Context, e *Evaluation) error {
	query := `
INSERT INTO evaluations (
	id, employee_id, year, month, score, grade, notes, evaluated_by,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		e.ID, e.EmployeeID, e.Year, e.Month, e.Score, e.Grade, e.Notes, e.EvaluatedBy,
	)
	return err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error) {
	var evals []Evaluation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC").
		Find(&evals).Error
	return evals, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Evaluation, error) {
	var e Evaluation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Evaluation) error {
	query := `
UPDATE evaluations
SET score = $2, grade = $3, notes = $4, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, e.ID, e.Score, e.Grade, e.Notes)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.execer().ExecContext(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
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
