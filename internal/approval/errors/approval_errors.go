package approvalerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval request not found",
		http.StatusNotFound,
	)
	ErrUnknownRequestType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown request type",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.RequiredField("rejection reason")
	ErrUnauthorizedApprover    = apperror.New(
		apperror.CodeUnauthorizedApprover,
		"actor is not the pending approver of this request",
		http.StatusForbidden,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"request is not pending approval",
		http.StatusConflict,
	)
	ErrConcurrentModification = apperror.New(
		apperror.CodeConcurrentModification,
		"request was modified concurrently, retry the operation",
		http.StatusConflict,
	)
)
