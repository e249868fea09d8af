package domain

import (
	"fmt"
	"sort"
)

// Directive declares that a source file tracks one or more remote nodes.
// Directives are produced by an external scanner; the tracker only
// consumes them.
type Directive struct {
	// SourceFile is the file the directive was scanned from.
	SourceFile string `json:"sourceFile" yaml:"sourceFile"`

	// FileKey identifies the remote design file.
	FileKey string `json:"fileKey" yaml:"fileKey"`

	// NodeIDs are the tracked node ids within that file.
	NodeIDs []string `json:"nodeIds" yaml:"nodeIds"`
}

// Validate checks the scanner contract: non-empty file key and at least
// one node id per directive.
func (d Directive) Validate() error {
	if d.FileKey == "" {
		return NewValidationError(fmt.Sprintf("directive from %q has no file key", d.SourceFile))
	}
	if len(d.NodeIDs) == 0 {
		return NewValidationError(fmt.Sprintf("directive from %q has no node ids", d.SourceFile))
	}
	return nil
}

// FetchRequest is one batched request against a single remote file.
// Immutable once built; the fetch client issues exactly one call per
// request (plus rate-limit retries).
type FetchRequest struct {
	// FileKey identifies the remote design file.
	FileKey string

	// NodeIDs are the deduplicated node ids to fetch, sorted.
	NodeIDs []string

	// SourceFiles records every source file requesting each node id.
	// A node may be referenced from multiple files.
	SourceFiles map[string][]string
}

// GroupDirectives merges directives into one FetchRequest per file key.
// Node ids are deduplicated and sorted, and every requesting source file
// is recorded per node id. Requests come back sorted by file key so the
// fetch order is stable across runs.
func GroupDirectives(directives []Directive) []FetchRequest {
	type group struct {
		ids     map[string]struct{}
		sources map[string]map[string]struct{}
	}

	groups := make(map[string]*group)
	for _, d := range directives {
		g, ok := groups[d.FileKey]
		if !ok {
			g = &group{
				ids:     make(map[string]struct{}),
				sources: make(map[string]map[string]struct{}),
			}
			groups[d.FileKey] = g
		}
		for _, id := range d.NodeIDs {
			if id == "" {
				continue
			}
			g.ids[id] = struct{}{}
			if d.SourceFile != "" {
				if g.sources[id] == nil {
					g.sources[id] = make(map[string]struct{})
				}
				g.sources[id][d.SourceFile] = struct{}{}
			}
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	requests := make([]FetchRequest, 0, len(keys))
	for _, key := range keys {
		g := groups[key]

		ids := make([]string, 0, len(g.ids))
		for id := range g.ids {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		sources := make(map[string][]string, len(g.sources))
		for id, set := range g.sources {
			files := make([]string, 0, len(set))
			for f := range set {
				files = append(files, f)
			}
			sort.Strings(files)
			sources[id] = files
		}

		requests = append(requests, FetchRequest{
			FileKey:     key,
			NodeIDs:     ids,
			SourceFiles: sources,
		})
	}
	return requests
}
