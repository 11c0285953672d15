package employeeerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)
	ErrManagerNotAssigned = apperror.New(
		apperror.CodeNotFound,
		"No manager is assigned",
		http.StatusNotFound,
	)
	ErrEmployeeNoTaken = apperror.New(
		apperror.CodeConflict,
		"Employee number is already in use",
		http.StatusConflict,
	)
	ErrTerminationBeforeHire = apperror.New(
		apperror.CodeInvalidState,
		"Termination date is before the hire date",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDate = apperror.InvalidField("date (expected YYYY-MM-DD)")
)
