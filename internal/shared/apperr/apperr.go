// Package apperr defines the application error type carried through the
// request pipeline and classified by the global error middleware.
package apperr

import "net/http"

// Status texts written into error responses and error-log rows.
const (
	TextBadRequest          = "Bad Request"
	TextUnauthorized        = "Unauthorized"
	TextForbidden           = "Forbidden"
	TextNotFound            = "Not Found"
	TextConflict            = "Conflict"
	TextInternalServerError = "Internal Server Error"
)

// AppError carries a fixed (status code, status text, message) triple.
// Handlers and usecases raise it; only the error middleware formats it
// into an HTTP response.
type AppError struct {
	StatusCode int
	StatusText string
	Message    string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// New creates an AppError with an explicit triple.
func New(statusCode int, statusText, message string) *AppError {
	return &AppError{StatusCode: statusCode, StatusText: statusText, Message: message}
}

// BadRequest creates a 400 AppError.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, TextBadRequest, message)
}

// Unauthorized creates a 401 AppError.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, TextUnauthorized, message)
}

// NotFound creates a 404 AppError.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, TextNotFound, message)
}
