// Package errors defines the error taxonomy the catalog service exposes over
// HTTP. Failures are classified with sentinel errors and carried as AppError
// values so handlers can map them to status codes without string matching.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for the outcomes the service distinguishes. A missing vehicle and
// an unloaded catalog are ordinary results, not faults; they get their own
// sentinels so callers can branch with errors.Is.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
	ErrServiceUnavail = errors.New("service unavailable")
)

// AppError is an error with a wire code and an HTTP status attached. Code and
// Message are what the JSON envelope shows; Err keeps the underlying cause in
// the chain for errors.Is checks and logs.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	msg := e.Code + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no record with the given id exists in the snapshot.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput reports a malformed or missing request parameter.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// ServiceUnavailable reports that the catalog snapshot is not loaded. Every
// catalog request maps to this until a restart brings the snapshot in.
func ServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:    "CATALOG_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     ErrServiceUnavail,
	}
}

// HTTPStatus maps an error to the status code a handler should write. An
// AppError anywhere in the chain wins; bare sentinels map to their canonical
// codes; anything else is a 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
