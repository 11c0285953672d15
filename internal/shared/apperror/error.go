package apperror

// AppError is an error with a stable code and the HTTP status it maps to.
// Package-level sentinels are compared with errors.Is; context is added by
// wrapping them with fmt.Errorf("%w: ...").
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches cause to a fresh AppError. A nil cause yields nil.
func Wrap(cause error, code, message string, httpStatus int) *AppError {
	if cause == nil {
		return nil
	}
	e := New(code, message, httpStatus)
	e.Err = cause
	return e
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }
