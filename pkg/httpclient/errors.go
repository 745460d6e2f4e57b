package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/AnaFlavia-corretora/pcd/pkg/errors"
)

// maxErrorBody bounds how much of an upstream error body is read. Real
// error messages fit easily; the cap protects against a misconfigured
// upstream streaming something huge.
const maxErrorBody = 1 << 20

// errorEnvelope is the JSON error shape the corretora's services share.
// The catalog host answers in it when the snapshot endpoint misbehaves.
type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError turns a non-2xx response from the named upstream
// into an error, consuming and closing the body. A structured envelope
// body keeps its code and message; anything else is reported with the
// status line and the raw body.
func ParseResponseError(resp *http.Response, upstreamName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstreamName, resp.StatusCode, err)
	}

	var envelope errorEnvelope
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
		return upstreamError(resp.StatusCode, envelope.Error.Code, envelope.Error.Message, upstreamName)
	}

	return fmt.Errorf("%s returned status %d: %s", upstreamName, resp.StatusCode, string(body))
}

// upstreamError rebuilds an AppError from the upstream's status and code
// so callers can react with errors.Is exactly as they do for local
// failures. A 5xx stays a plain error: the upstream's internal fault has
// no client-facing meaning here.
func upstreamError(status int, code, message, upstreamName string) error {
	qualified := upstreamName + ": " + message

	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	case status >= 500:
		return fmt.Errorf("%s server error (%d/%s): %s", upstreamName, status, code, message)
	default:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  status,
		}
	}
}
