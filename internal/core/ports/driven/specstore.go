package driven

import (
	"context"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// SpecStore persists normalised specs, one record per tracked node id.
type SpecStore interface {
	// Save stores a spec, replacing any existing record for its node id.
	Save(ctx context.Context, spec *domain.NormalizedSpec) error

	// Load retrieves the spec for a node id.
	// Returns domain.ErrSpecNotFound if no record exists.
	Load(ctx context.Context, nodeID string) (*domain.NormalizedSpec, error)

	// LoadAll returns every readable spec keyed by node id. A corrupt
	// record is skipped with a warning so one bad row never blocks a
	// run; it is repaired by the next successful Save.
	LoadAll(ctx context.Context) (map[string]*domain.NormalizedSpec, error)

	// Delete removes the spec for a node id. Deleting a missing id is
	// not an error.
	Delete(ctx context.Context, nodeID string) error

	// ListIDs returns the ids of all stored specs in sorted order.
	ListIDs(ctx context.Context) ([]string, error)
}
