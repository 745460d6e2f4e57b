package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// catalogPort is the port the catalog service listens on, matching the
// HTTP_PORT default.
const catalogPort = 8080

// baseURL returns the base URL for the catalog service.
func baseURL() string {
	return fmt.Sprintf("http://localhost:%d", catalogPort)
}

// skipIfNotRunning performs a quick liveness check against the service.
// If the service is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("catalog service on port %d not reachable: %v", catalogPort, err)
	}
	resp.Body.Close()
}

// skipIfNotReady additionally requires the snapshot to be loaded. The
// service legitimately runs in a 503 state when its upstream was down at
// startup; catalog flow tests cannot assert anything useful in that state.
func skipIfNotReady(t *testing.T) {
	t.Helper()
	skipIfNotRunning(t)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/ready")
	if err != nil {
		t.Skipf("readiness check failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("catalog snapshot not loaded (readiness %d)", resp.StatusCode)
	}
}

// httpGet performs an HTTP GET request and returns the status code and decoded JSON body.
func httpGet(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// httpGetHTML performs an HTTP GET request against a page endpoint and
// returns the status code, Content-Type header, and raw body.
func httpGetHTML(t *testing.T, url string) (int, string, string) {
	t.Helper()
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body failed: %v", err)
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(raw)
}

// decodeBody reads the response body and attempts to decode it as JSON.
// If the body is empty or not JSON, it returns an empty map.
func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading response body failed: %v", err)
	}
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		// Not JSON; return the raw string in a "raw" key for debugging.
		return map[string]interface{}{"raw": string(raw)}
	}
	return result
}

// requireStatus asserts that the HTTP status code matches the expected value.
func requireStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("expected status %d, got %d", want, got)
	}
}

// extractField extracts a value from a nested map using a dot-separated path.
// For example, extractField(data, "data.modo") navigates data["data"]["modo"].
func extractField(data map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var current interface{} = data
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// extractString is a convenience wrapper around extractField that returns a string.
func extractString(t *testing.T, data map[string]interface{}, path string) string {
	t.Helper()
	val := extractField(data, path)
	if val == nil {
		t.Fatalf("expected string at path %q, got nil", path)
	}
	s, ok := val.(string)
	if !ok {
		t.Fatalf("expected string at path %q, got %T: %v", path, val, val)
	}
	return s
}

// extractRows returns the veiculos array from a listing response.
func extractRows(t *testing.T, data map[string]interface{}) []map[string]interface{} {
	t.Helper()
	val := extractField(data, "data.veiculos")
	if val == nil {
		t.Fatal("expected data.veiculos in listing response, got nil")
	}
	arr, ok := val.([]interface{})
	if !ok {
		t.Fatalf("expected array at data.veiculos, got %T", val)
	}

	rows := make([]map[string]interface{}, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("expected object at data.veiculos[%d], got %T", i, item)
		}
		rows = append(rows, m)
	}
	return rows
}
