package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnaFlavia-corretora/pcd/pkg/logger"
)

func TestRequestLogging_WritesAccessLogLine(t *testing.T) {
	var logs bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&logs, nil))

	handler := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nada aqui"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/veiculos/polo-2020", nil)
	req.Header.Set("X-Correlation-ID", "corr-log-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, http.MethodGet, line["method"])
	assert.Equal(t, "/veiculos/polo-2020", line["path"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, float64(len("nada aqui")), line["bytes"])
	assert.Equal(t, "corr-log-1", line["correlation_id"])
}

func TestRequestLogging_EchoesCallerCorrelationID(t *testing.T) {
	l := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	var seen string
	handler := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-log-2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "corr-log-2", rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, "corr-log-2", seen, "handlers must see the same ID the client sent")
}

func TestRequestLogging_MintsIDWhenHeaderMissing(t *testing.T) {
	l := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))

	handler := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get("X-Correlation-ID")
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated correlation IDs are UUIDs")
}
