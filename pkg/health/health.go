// Package health serves the liveness and readiness endpoints.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker reports whether one dependency is usable right now.
type Checker func(ctx context.Context) error

const checkTimeout = 5 * time.Second

type check struct {
	name string
	fn   Checker
}

// Handler owns the checks behind /health/live and /health/ready.
type Handler struct {
	mu     sync.RWMutex
	checks []check
}

// NewHandler returns a Handler with no checks registered. Liveness works
// immediately; readiness reports up until a registered check fails.
func NewHandler() *Handler {
	return &Handler{}
}

// Register adds a named readiness check. Registering a name twice replaces
// the earlier check.
func (h *Handler) Register(name string, fn Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.checks {
		if h.checks[i].name == name {
			h.checks[i].fn = fn
			return
		}
	}
	h.checks = append(h.checks, check{name: name, fn: fn})
}

type result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type payload struct {
	Status string            `json:"status"`
	Checks map[string]result `json:"checks,omitempty"`
}

// LivenessHandler answers 200 whenever the process can serve HTTP at all.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePayload(w, http.StatusOK, payload{Status: "up"})
	}
}

// ReadinessHandler runs every registered check. A single failure turns the
// response into a 503 so load balancers stop routing traffic here.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		h.mu.RLock()
		checks := make([]check, len(h.checks))
		copy(checks, h.checks)
		h.mu.RUnlock()

		out := payload{Status: "up", Checks: make(map[string]result, len(checks))}
		status := http.StatusOK

		for _, c := range checks {
			if err := c.fn(ctx); err != nil {
				out.Checks[c.name] = result{Status: "down", Error: err.Error()}
				out.Status = "down"
				status = http.StatusServiceUnavailable
			} else {
				out.Checks[c.name] = result{Status: "up"}
			}
		}

		writePayload(w, status, out)
	}
}

func writePayload(w http.ResponseWriter, status int, p payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(p)
}
