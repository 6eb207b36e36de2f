package evaluationerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidScore = apperror.New(
		apperror.CodeInvalidInput,
		"score must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrEvaluationNotFound = apperror.New(
		apperror.CodeNotFound,
		"evaluation not found",
		http.StatusNotFound,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"an evaluation for this employee and period already exists",
		http.StatusConflict,
	)
)
