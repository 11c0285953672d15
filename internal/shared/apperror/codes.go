package apperror

// Request errors.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
)

// Approval workflow and payroll errors.
const (
	CodeResolution             = "APPROVER_UNRESOLVED"
	CodeUnauthorizedApprover   = "UNAUTHORIZED_APPROVER"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodePriorPayrollUnapproved = "PRIOR_PAYROLL_UNAPPROVED"
)

const CodeInternalError = "INTERNAL_ERROR"
