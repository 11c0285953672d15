package employeesalaryerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidBreakdown = apperror.New(
		apperror.CodeInvalidState,
		"Salary breakdown percentages must be non-negative and sum to 1",
		http.StatusUnprocessableEntity,
	)

	ErrBreakdownNotConfigured = apperror.New(
		apperror.CodeInvalidState,
		"No salary breakdown is configured for this employee",
		http.StatusUnprocessableEntity,
	)
)
