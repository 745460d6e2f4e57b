package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnaFlavia-corretora/pcd/internal/catalog"
	"github.com/AnaFlavia-corretora/pcd/internal/domain"
	"github.com/AnaFlavia-corretora/pcd/internal/repository"
	apperrors "github.com/AnaFlavia-corretora/pcd/pkg/errors"
)

var (
	snapshotItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_items",
			Help: "Number of records in the published catalog snapshot",
		},
	)

	snapshotLoadedAt = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_loaded_timestamp_seconds",
			Help: "Unix time at which the catalog snapshot was published",
		},
	)

	snapshotLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_snapshot_load_failures_total",
			Help: "Total number of failed catalog snapshot loads",
		},
	)
)

// CatalogService implements the read operations the listing and detail
// surfaces need, all served from the published snapshot.
type CatalogService struct {
	source repository.SnapshotSource
	store  *catalog.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(source repository.SnapshotSource, store *catalog.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		store:  store,
		logger: logger,
	}
}

// Load fetches the catalog snapshot and publishes it into the store. It runs
// once, at startup. A fetch failure is logged and returned without retry;
// the service then keeps answering requests in its unavailable state rather
// than crash or serve partial data.
func (s *CatalogService) Load(ctx context.Context) error {
	items, err := s.source.FetchCatalog(ctx)
	if err != nil {
		snapshotLoadFailures.Inc()
		s.logger.ErrorContext(ctx, "catalog snapshot load failed",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("load catalog: %w", err)
	}

	if err := s.store.Publish(items); err != nil {
		return fmt.Errorf("publish catalog: %w", err)
	}

	snapshotItems.Set(float64(len(items)))
	snapshotLoadedAt.SetToCurrentTime()
	s.logger.InfoContext(ctx, "catalog snapshot loaded",
		slog.Int("items", len(items)),
	)
	return nil
}

// List returns the catalog ordered for the given sort mode.
func (s *CatalogService) List(ctx context.Context, mode domain.SortMode) ([]domain.Vehicle, error) {
	items, ok := s.store.Snapshot()
	if !ok {
		return nil, apperrors.ServiceUnavailable("catalog snapshot not loaded")
	}
	return catalog.Sort(items, mode), nil
}

// ListRows returns the catalog ordered for the given sort mode, annotated
// with the group boundaries and discount figures the listing renders.
func (s *CatalogService) ListRows(ctx context.Context, mode domain.SortMode) ([]catalog.Row, error) {
	items, ok := s.store.Snapshot()
	if !ok {
		return nil, apperrors.ServiceUnavailable("catalog snapshot not loaded")
	}
	return catalog.BuildRows(items, mode), nil
}

// Get returns the record with the given identifier. An unknown identifier is
// a first-class not-found outcome, surfaced to the user rather than treated
// as a fault.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	items, ok := s.store.Snapshot()
	if !ok {
		return nil, apperrors.ServiceUnavailable("catalog snapshot not loaded")
	}

	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	return nil, apperrors.NotFound("veiculo", id)
}

// Ready reports whether the snapshot has been published.
func (s *CatalogService) Ready() bool {
	return s.store.Ready()
}
