package middleware

import (
	"log/slog"
	"net/http"

	"github.com/AnaFlavia-corretora/pcd/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, pre-tagged
// with the correlation ID and active trace IDs, for handlers to pick up
// via logger.FromContext. Mount it after RequestLogging and Tracing so
// both have already populated the context it reads.
func RequestLogger(root *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, root))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
