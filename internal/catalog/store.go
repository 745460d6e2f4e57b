package catalog

import (
	"errors"
	"sync"
	"time"

	"github.com/AnaFlavia-corretora/pcd/internal/domain"
)

// ErrAlreadyPublished is returned when a snapshot is published into a store
// that already holds one.
var ErrAlreadyPublished = errors.New("catalog snapshot already published")

// Store holds the catalog snapshot for the lifetime of the process. The
// snapshot is written exactly once, on a successful fetch, and only read
// after that: single writer at load, many readers afterwards. It is never
// re-fetched, replaced or mutated in place.
type Store struct {
	mu       sync.RWMutex
	items    []domain.Vehicle
	ready    bool
	loadedAt time.Time
}

// NewStore creates an empty, unpublished store.
func NewStore() *Store {
	return &Store{}
}

// Publish installs the fetched snapshot. The store keeps its own copy, so
// later changes to the caller's slice cannot leak in. A second Publish is
// rejected with ErrAlreadyPublished.
func (s *Store) Publish(items []domain.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return ErrAlreadyPublished
	}

	s.items = make([]domain.Vehicle, len(items))
	copy(s.items, items)
	s.ready = true
	s.loadedAt = time.Now()
	return nil
}

// Snapshot returns a fresh copy of the catalog in its original order, and
// whether a snapshot has been published. Callers may reorder the returned
// slice freely; the stored order is untouched.
func (s *Store) Snapshot() ([]domain.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, false
	}

	out := make([]domain.Vehicle, len(s.items))
	copy(out, s.items)
	return out, true
}

// Ready reports whether a snapshot has been published.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Len returns the number of records in the snapshot, zero when unpublished.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// LoadedAt returns when the snapshot was published; zero time when
// unpublished.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
