// Package middleware holds the chi middleware stack for the catalog
// service: access logging with correlation IDs, Prometheus metrics,
// OpenTelemetry spans, panic recovery, per-IP rate limiting, CORS,
// response caching headers and an IP-guarded pprof mount.
package middleware

import "net/http"

// statusWriter records the status code and body size of a response.
// The first WriteHeader wins; a Write without an explicit WriteHeader
// counts as 200, mirroring net/http.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func wrap(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Status returns the recorded status code, defaulting to 200 when the
// handler never wrote anything.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
