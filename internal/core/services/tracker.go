package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driven"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driving"
	"github.com/spectrail-labs/spectrail-cli/internal/diff"
	"github.com/spectrail-labs/spectrail-cli/internal/logger"
	"github.com/spectrail-labs/spectrail-cli/internal/normaliser"
)

// Ensure TrackerService implements the interface.
var _ driving.Tracker = (*TrackerService)(nil)

// TrackerService coordinates a tracking run: fetch, normalise, diff
// against the persisted baseline, persist.
type TrackerService struct {
	fetcher driven.NodeFetcher
	store   driven.SpecStore

	// now is swapped out by tests for deterministic timestamps.
	now func() time.Time
}

// NewTrackerService creates a tracker backed by the given fetcher and
// spec store.
func NewTrackerService(fetcher driven.NodeFetcher, store driven.SpecStore) *TrackerService {
	return &TrackerService{
		fetcher: fetcher,
		store:   store,
		now:     time.Now,
	}
}

// Run executes one tracking run over the given directives.
func (s *TrackerService) Run(ctx context.Context, directives []domain.Directive, opts driving.RunOptions) (*domain.TrackResult, error) {
	collector := domain.NewCollector()

	// 1. Validate directives up front so a bad entry fails before any fetch.
	if len(directives) == 0 {
		return nil, domain.NewValidationError("track: no directives given")
	}
	for _, d := range directives {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	// 2. Group into one batched request per file.
	requests := domain.GroupDirectives(directives)
	logger.Info("Tracking %d directives across %d files", len(directives), len(requests))

	// 3. Fetch every named node. Fail-fast: a fetch error aborts the run.
	nodes, err := s.fetcher.FetchNodes(ctx, requests, collector)
	if err != nil {
		return nil, err
	}

	// 4. Normalise into comparison-ready specs.
	generatedAt := s.now().UTC()
	fresh := normaliser.BuildSpecs(nodes, normaliser.Options{
		Include: opts.Include,
		Exclude: opts.Exclude,
	}, generatedAt)

	// 5. Load the persisted baseline.
	persisted, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load persisted specs: %w", err)
	}

	// 6. Hash comparison classifies each id as added, changed or removed.
	detection := domain.DetectChanges(persisted, fresh)

	// 7. Property-level diffs for every changed spec.
	changes := make(map[string][]domain.PropertyChange)
	variantChanges := make(map[string][]domain.VariantChange)
	for _, id := range detection.Changed {
		props, variants := diff.Specs(persisted[id], fresh[id])
		if len(props) > 0 {
			changes[id] = props
		}
		if len(variants) > 0 {
			variantChanges[id] = variants
		}
		if len(props) == 0 && len(variants) == 0 {
			collector.Warnf("spec %s: content hash changed but no property differences detected", id)
		}
	}

	// 8. Persist the fresh baseline unless this is a dry run.
	if !opts.DryRun {
		if err := s.persist(ctx, fresh, detection.Removed); err != nil {
			return nil, err
		}
	}

	logger.Info("Run complete: %d added, %d changed, %d removed",
		len(detection.Added), len(detection.Changed), len(detection.Removed))

	return &domain.TrackResult{
		RunID:          uuid.New().String(),
		GeneratedAt:    generatedAt,
		Detection:      detection,
		Specs:          fresh,
		Changes:        changes,
		VariantChanges: variantChanges,
		Stats:          collector.Stats(),
		DryRun:         opts.DryRun,
	}, nil
}

// persist saves every fresh spec and drops records for ids that are no
// longer tracked. Saves run in sorted id order so failures are
// deterministic.
func (s *TrackerService) persist(ctx context.Context, fresh map[string]*domain.NormalizedSpec, removed []string) error {
	ids := make([]string, 0, len(fresh))
	for id := range fresh {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := s.store.Save(ctx, fresh[id]); err != nil {
			return fmt.Errorf("save spec %s: %w", id, err)
		}
	}
	for _, id := range removed {
		if err := s.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete spec %s: %w", id, err)
		}
	}
	return nil
}
