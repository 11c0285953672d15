package projecterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"project request not found",
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
	ErrSameProject = apperror.New(
		apperror.CodeInvalidInput,
		"transfer source and target project must differ",
		http.StatusBadRequest,
	)
	ErrNotOnProject = apperror.New(
		apperror.CodeInvalidState,
		"employee is not assigned to the source project",
		http.StatusUnprocessableEntity,
	)
	ErrEmptyLaborRequest = apperror.New(
		apperror.CodeInvalidInput,
		"labor request needs at least one line",
		http.StatusBadRequest,
	)
)
