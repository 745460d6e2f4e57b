package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnaFlavia-corretora/pcd/internal/app"
	"github.com/AnaFlavia-corretora/pcd/internal/config"
	"github.com/AnaFlavia-corretora/pcd/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("catalog service exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("catalogo", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogApp, err := app.NewApp(cfg, log)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}

	log.Info("starting catalog service",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
		slog.String("snapshot_source", cfg.CatalogSource),
	)

	if err := catalogApp.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	log.Info("catalog service stopped")
	return nil
}
