package driving

import (
	"context"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// Tracker runs the fetch, normalise and diff pipeline over a set of
// directives.
type Tracker interface {
	// Run executes one tracking run: groups the directives by file,
	// fetches every named node, normalises the results and diffs them
	// against the persisted baseline. Unless opts.DryRun is set, the
	// baseline is updated to match.
	Run(ctx context.Context, directives []domain.Directive, opts RunOptions) (*domain.TrackResult, error)
}

// RunOptions tune a single tracking run.
type RunOptions struct {
	// DryRun reports changes without touching the persisted baseline.
	DryRun bool

	// Include, when non-empty, restricts tracked node properties to
	// the named ones plus the identity properties.
	Include []string

	// Exclude drops the named node properties in addition to the
	// built-in volatile set.
	Exclude []string
}
