package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrNotLeaveOwner = apperror.New(
		apperror.CodeForbidden,
		"leave belongs to another employee",
		http.StatusForbidden,
	)
	ErrLeaveNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave can be cancelled",
		http.StatusConflict,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave entitlement for this type and year",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidEntitlement = apperror.New(
		apperror.CodeInvalidInput,
		"entitled days must not be negative",
		http.StatusBadRequest,
	)
)
