package loanerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidLoanAmount = apperror.New(
		apperror.CodeInvalidInput,
		"loan amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidInstallmentCount = apperror.New(
		apperror.CodeInvalidInput,
		"number of installments must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan not found",
		http.StatusNotFound,
	)
	ErrInstallmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan installment not found",
		http.StatusNotFound,
	)
	ErrLoanInactive = apperror.New(
		apperror.CodeInvalidState,
		"loan is not active",
		http.StatusConflict,
	)
	ErrPaymentExceedsBalance = apperror.New(
		apperror.CodeInvalidInput,
		"payment exceeds the remaining loan balance",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentAmount = apperror.New(
		apperror.CodeInvalidInput,
		"payment amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInstallmentAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"installment is already paid",
		http.StatusConflict,
	)
	ErrInvalidPostponeDate = apperror.New(
		apperror.CodeInvalidInput,
		"new due date must be after the current due date",
		http.StatusBadRequest,
	)
	ErrPostponementPending = apperror.New(
		apperror.CodeConflict,
		"installment already has a pending postponement request",
		http.StatusConflict,
	)
	ErrNotLoanOwner = apperror.New(
		apperror.CodeForbidden,
		"installment does not belong to the requesting employee",
		http.StatusForbidden,
	)
	ErrInstallmentNotDue = apperror.New(
		apperror.CodeInvalidState,
		"installment is no longer due in this salary month, recalculate the payroll",
		http.StatusConflict,
	)
)
