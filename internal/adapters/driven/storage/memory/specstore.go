package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driven"
)

// Ensure SpecStore implements the interface.
var _ driven.SpecStore = (*SpecStore)(nil)

// SpecStore is an in-memory implementation of driven.SpecStore. It
// backs tests and short-lived runs that should not touch disk.
type SpecStore struct {
	mu    sync.RWMutex
	specs map[string]*domain.NormalizedSpec
}

// NewSpecStore creates a new in-memory spec store.
func NewSpecStore() *SpecStore {
	return &SpecStore{
		specs: make(map[string]*domain.NormalizedSpec),
	}
}

// Save stores or replaces the spec for a node id.
func (s *SpecStore) Save(_ context.Context, spec *domain.NormalizedSpec) error {
	if spec == nil || spec.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs[spec.ID] = spec
	return nil
}

// Load retrieves the spec for a node id.
func (s *SpecStore) Load(_ context.Context, nodeID string) (*domain.NormalizedSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spec, ok := s.specs[nodeID]
	if !ok {
		return nil, domain.ErrSpecNotFound
	}
	return spec, nil
}

// LoadAll returns every stored spec keyed by node id.
func (s *SpecStore) LoadAll(_ context.Context) (map[string]*domain.NormalizedSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*domain.NormalizedSpec, len(s.specs))
	for id, spec := range s.specs {
		out[id] = spec
	}
	return out, nil
}

// Delete removes the spec for a node id. Deleting a missing id is not
// an error.
func (s *SpecStore) Delete(_ context.Context, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.specs, nodeID)
	return nil
}

// ListIDs returns the ids of all stored specs in sorted order.
func (s *SpecStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.specs))
	for id := range s.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
