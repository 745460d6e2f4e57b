package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/AnaFlavia-corretora/pcd/internal/domain"
)

// Source reads the catalog snapshot from a local JSON file. Used for local
// development and tests; deployments point at the HTTP source instead.
type Source struct {
	path string
}

// NewSource creates a file snapshot source for the given path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// FetchCatalog reads and decodes the snapshot file.
func (s *Source) FetchCatalog(_ context.Context) ([]domain.Vehicle, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}

	var items []domain.Vehicle
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot %s: %w", s.path, err)
	}

	return items, nil
}
