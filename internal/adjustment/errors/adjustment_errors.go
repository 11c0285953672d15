package adjustmenterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrAdjustmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"monthly adjustment not found",
		http.StatusNotFound,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrReservedTypeCode = apperror.New(
		apperror.CodeInvalidInput,
		"type code is reserved for generated payroll lines",
		http.StatusBadRequest,
	)
	ErrNotApplicable = apperror.New(
		apperror.CodeInvalidState,
		"only approved one-time adjustments can be marked applied",
		http.StatusConflict,
	)
	ErrCannotDelete = apperror.New(
		apperror.CodeInvalidState,
		"adjustment can no longer be deleted",
		http.StatusConflict,
	)
)
