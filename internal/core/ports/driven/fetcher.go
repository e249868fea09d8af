package driven

import (
	"context"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// NodeFetcher retrieves raw node documents from the remote design API.
type NodeFetcher interface {
	// FetchNodes fetches every node named by the requests, one batched
	// call per file, and returns the results keyed by node id. The
	// collector accumulates request, retry and node counts for the run.
	//
	// Fail-fast: the first unrecoverable error cancels the remaining
	// requests and is returned as-is; partial results are discarded.
	FetchNodes(ctx context.Context, requests []domain.FetchRequest, collector *domain.Collector) (map[string]*domain.RawNode, error)
}
