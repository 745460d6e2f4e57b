package repository

import (
	"context"

	"github.com/AnaFlavia-corretora/pcd/internal/domain"
)

// SnapshotSource defines the interface for retrieving the catalog snapshot.
// Implementations may fetch over HTTP or read a local file; either way the
// snapshot is fetched exactly once, at startup, and the system stays
// read-only against it.
type SnapshotSource interface {
	// FetchCatalog retrieves the full catalog snapshot in its authored
	// order. A failure is terminal for the load: callers do not retry
	// beyond the transport's own attempts and must not use partial data.
	FetchCatalog(ctx context.Context) ([]domain.Vehicle, error)
}
