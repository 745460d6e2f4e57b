package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnaFlavia-corretora/pcd/internal/config"
	"github.com/AnaFlavia-corretora/pcd/internal/service"
	"github.com/AnaFlavia-corretora/pcd/pkg/health"
	"github.com/AnaFlavia-corretora/pcd/pkg/middleware"
)

// NewRouter creates a chi router with the rendered pages, the JSON API and
// the operational endpoints registered.
func NewRouter(
	cfg *config.Config,
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack (applied in order).
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		ExposedHeaders: []string{"X-Correlation-ID"},
		MaxAge:         3600,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalogo"))
	r.Use(middleware.Tracing("catalogo"))
	r.Use(middleware.RequestLogger(logger))

	// Probes and profiling sit outside the cached page group.
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Rendered pages. The snapshot never changes after startup, so the
	// pages can be cached by browsers and intermediaries.
	pageHandler := NewPageHandler(catalogService, cfg.WhatsAppPhone, logger)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(cfg.PageCacheMaxAge))

		r.Get("/", pageHandler.Listing)
		r.Get("/veiculo", pageHandler.Detail)
	})

	catalogHandler := NewCatalogHandler(catalogService, logger)
	r.Route("/api/v1/veiculos", func(r chi.Router) {
		r.Get("/", catalogHandler.ListVehicles)
		r.Get("/{id}", catalogHandler.GetVehicle)
	})

	return r
}
