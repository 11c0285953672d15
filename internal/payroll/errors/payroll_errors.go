package payrollerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary month, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotActive = apperror.New(
		apperror.CodeInvalidState,
		"employee is not employed in the salary month",
		http.StatusUnprocessableEntity,
	)
	ErrCalculationInProgress = apperror.New(
		apperror.CodeConflict,
		"payroll for this employee and month is being calculated",
		http.StatusConflict,
	)
	ErrPayrollAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"payroll for this month is already approved",
		http.StatusConflict,
	)
	ErrPriorPayrollUnapproved = apperror.New(
		apperror.CodePriorPayrollUnapproved,
		"an earlier salary month is not approved yet",
		http.StatusConflict,
	)
	ErrRecalculationReasonRequired = apperror.RequiredField("recalculation reason")
	ErrInvalidPolicy               = apperror.New(
		apperror.CodeInternalError,
		"payroll rate policy is not configured",
		http.StatusInternalServerError,
	)
)
