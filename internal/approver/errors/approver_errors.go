package approvererrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrUnresolved = apperror.New(
		apperror.CodeResolution,
		"approver could not be resolved",
		http.StatusUnprocessableEntity,
	)
	ErrUnknownFunction = apperror.New(
		apperror.CodeInvalidInput,
		"unknown approver function",
		http.StatusBadRequest,
	)
	ErrSpecificEmployeeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"SpecificEmployee requires an employee number",
		http.StatusBadRequest,
	)
)
