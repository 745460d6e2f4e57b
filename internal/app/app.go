package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AnaFlavia-corretora/pcd/internal/catalog"
	"github.com/AnaFlavia-corretora/pcd/internal/config"
	handler "github.com/AnaFlavia-corretora/pcd/internal/handler/http"
	"github.com/AnaFlavia-corretora/pcd/internal/repository"
	filesource "github.com/AnaFlavia-corretora/pcd/internal/repository/file"
	"github.com/AnaFlavia-corretora/pcd/internal/repository/httpjson"
	"github.com/AnaFlavia-corretora/pcd/internal/service"
	"github.com/AnaFlavia-corretora/pcd/pkg/health"
	"github.com/AnaFlavia-corretora/pcd/pkg/httpclient"
	"github.com/AnaFlavia-corretora/pcd/pkg/tracing"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	catalogService *service.CatalogService
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp builds the dependency graph and loads the catalog snapshot. A
// failed load is not fatal: the server starts anyway and answers every
// catalog request with 503 until a restart brings the snapshot in.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "catalogo",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	store := catalog.NewStore()
	catalogService := service.NewCatalogService(snapshotSource(cfg, logger), store, logger)
	if err := catalogService.Load(ctx); err != nil {
		logger.Warn("starting without catalog snapshot",
			slog.String("error", err.Error()),
		)
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(ctx context.Context) error {
		if !catalogService.Ready() {
			return fmt.Errorf("catalog snapshot not loaded")
		}
		return nil
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      handler.NewRouter(cfg, catalogService, healthHandler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		catalogService: catalogService,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// snapshotSource picks where the catalog comes from: the remote JSON
// endpoint behind a retrying, circuit-broken client, or a local file for
// development.
func snapshotSource(cfg *config.Config, logger *slog.Logger) repository.SnapshotSource {
	if cfg.CatalogSource == "file" {
		logger.Info("reading catalog from file", slog.String("path", cfg.CatalogPath))
		return filesource.NewSource(cfg.CatalogPath)
	}

	client := httpclient.New(httpclient.Config{
		Timeout:         cfg.FetchTimeout,
		MaxRetries:      cfg.FetchRetries,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    3 * time.Second,
		MaxConnsPerHost: 4,
	})
	breaker := httpclient.NewCircuitBreakerClient(
		client, httpclient.DefaultCircuitBreakerConfig("catalogo"), logger)

	logger.Info("reading catalog over http", slog.String("url", cfg.CatalogURL))
	return httpjson.NewSource(breaker, cfg.CatalogURL)
}

// Run serves HTTP until ctx is canceled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server listening",
			slog.String("addr", a.httpServer.Addr),
			slog.Bool("catalog_ready", a.catalogService.Ready()),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown drains in-flight requests, then flushes buffered spans so the
// drained requests' traces still make it out.
func (a *App) Shutdown() error {
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancelDrain()
	if err := a.httpServer.Shutdown(drainCtx); err != nil {
		a.logger.Error("http server drain failed", slog.String("error", err.Error()))
	}

	if a.tracerShutdown != nil {
		flushCtx, cancelFlush := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancelFlush()
		if err := a.tracerShutdown(flushCtx); err != nil {
			a.logger.Error("span flush failed", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
