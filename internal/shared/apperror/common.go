package apperror

import "net/http"

var (
	ErrInvalidInput = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)

func RequiredField(field string) *AppError { return fieldError(field, "is required") }

func InvalidField(field string) *AppError { return fieldError(field, "is invalid") }

func fieldError(field, problem string) *AppError {
	return New(CodeInvalidInput, field+" "+problem, http.StatusBadRequest)
}
