package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingServer returns a test server whose handler is invoked for every
// attempt, plus a counter of how many attempts arrived.
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func testClient(maxRetries int) *Client {
	return New(Config{
		Timeout:         2 * time.Second,
		MaxRetries:      maxRetries,
		RetryWaitMin:    5 * time.Millisecond,
		RetryWaitMax:    20 * time.Millisecond,
		MaxConnsPerHost: 4,
	})
}

func TestClient_Get_Success(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[]`))
	})

	resp, err := testClient(2).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `[]`, string(body))
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Get_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	resp, err := testClient(3).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_Get_ClientErrorsPassThrough(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nao encontrado", http.StatusNotFound)
	})

	resp, err := testClient(2).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), hits.Load(), "4xx responses must not be retried")
}

func TestClient_Get_NotImplementedNotRetried(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	})

	resp, err := testClient(2).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Get_ExhaustedRetriesReturnLastResponse(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resp, err := testClient(2).Get(context.Background(), server.URL)
	require.NoError(t, err, "a 5xx that survives all retries is a response, not an error")
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_Get_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	resp, err := testClient(0).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Get_NetworkErrorExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := testClient(2).Get(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestClient_Get_CanceledContextStopsRetrying(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(5).Get(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, hits.Load(), int32(1))
}

func TestClient_BackoffIsCapped(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := New(Config{
		Timeout:         time.Second,
		MaxRetries:      3,
		RetryWaitMin:    10 * time.Millisecond,
		RetryWaitMax:    20 * time.Millisecond,
		MaxConnsPerHost: 4,
	})

	start := time.Now()
	resp, err := client.Get(context.Background(), server.URL)
	elapsed := time.Since(start)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// Waits are 10ms, 20ms, 20ms; well under a second even on a slow runner.
	assert.Equal(t, int32(4), hits.Load())
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}
