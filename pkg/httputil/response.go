// Package httputil writes the JSON envelope the catalog API uses.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/AnaFlavia-corretora/pcd/pkg/errors"
	"github.com/AnaFlavia-corretora/pcd/pkg/logger"
)

// Response is the JSON envelope: exactly one of Data or Error is set.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse is the error half of the envelope.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes v with the given status. An encoding failure after the
// header is sent cannot be reported to the client, so it is dropped.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError classifies err and writes the matching error envelope. Internal
// errors are logged; the request-scoped logger from RequestLogger is
// preferred, the fallback logger is used when that middleware is not mounted.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	status, code, message := classify(err)

	if status == http.StatusInternalServerError {
		l := logger.FromContext(r.Context())
		if l == slog.Default() {
			l = fallback
		}
		l.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Response{Error: &ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}})
}

// classify maps err to envelope fields. An AppError carries its own code and
// message; bare sentinels get canonical ones; anything unrecognized is
// reported as an internal error without leaking the cause to the client.
func classify(err error) (int, string, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Code, appErr.Message
	}

	status := apperrors.HTTPStatus(err)
	switch status {
	case http.StatusNotFound:
		return status, "NOT_FOUND", "resource not found"
	case http.StatusBadRequest:
		return status, "INVALID_INPUT", err.Error()
	case http.StatusServiceUnavailable:
		return status, "CATALOG_UNAVAILABLE", "catalog snapshot not loaded"
	default:
		return status, "INTERNAL_ERROR", "an internal error occurred"
	}
}
