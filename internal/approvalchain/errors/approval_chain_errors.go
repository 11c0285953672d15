package approvalchainerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrAmbiguousChain = apperror.New(
		apperror.CodeConflict,
		"approval chain has more than one entry of equal scope for a level",
		http.StatusConflict,
	)
	ErrLevelNotConfigured = apperror.New(
		apperror.CodeNotFound,
		"approval chain level not configured",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidChain = apperror.New(
		apperror.CodeInvalidInput,
		"approval chain configuration is invalid",
		http.StatusBadRequest,
	)
)
