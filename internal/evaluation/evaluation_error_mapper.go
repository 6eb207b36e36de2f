package evaluation

import (
	"errors"
	"strings"

	evaluationerrors "go-leave/internal/evaluation/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_evaluations_employee_period" {
			return evaluationerrors.ErrDuplicatePeriod
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_evaluations_employee_period") {
		return evaluationerrors.ErrDuplicatePeriod
	}

	return err
}
