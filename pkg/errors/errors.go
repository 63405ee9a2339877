package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a domain error carrying the HTTP status it should surface as.
// Handlers translate these into the {success:false, message} envelope; the
// wrapped cause is for server-side logs only and never reaches the client.
type AppError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation reports a missing or malformed request field.
func Validation(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// NotFound reports a missing resource.
func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// Conflict reports a uniqueness violation, e.g. a duplicate email at
// registration. Surfaced as 400 to match the public API contract.
func Conflict(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// Auth reports a failed credential or role check.
func Auth(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(message string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// Status returns the HTTP status for err, defaulting to 500 for anything
// that is not an AppError.
func Status(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err. Non-AppError failures
// get a generic message so internal details never leak.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// IsNotFound reports whether err is a 404 AppError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Status == http.StatusNotFound
}
