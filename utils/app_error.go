package utils

import "errors"

// AppError is a domain error raised by the service layer. Handlers map it to an
// HTTP status and a stable machine-readable code; anything else becomes a 500.
type AppError struct {
	Message    string
	StatusCode int
	Code       string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(message string, statusCode int, code ...string) *AppError {
	errCode := "APP_ERROR"
	if len(code) > 0 {
		errCode = code[0]
	}
	return &AppError{
		Message:    message,
		StatusCode: statusCode,
		Code:       errCode,
	}
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
