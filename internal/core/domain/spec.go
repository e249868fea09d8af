package domain

import "time"

// RawNode is one node document as returned by the remote design API,
// before normalisation. Document holds the raw JSON-decoded tree
// including volatile fields.
type RawNode struct {
	// ID is the node id within the remote file.
	ID string

	// FileKey identifies the remote file the node belongs to.
	FileKey string

	// Name is the node's display name.
	Name string

	// Type is the remote node type (FRAME, COMPONENT, COMPONENT_SET, ...).
	Type string

	// SourceFiles are the local files whose directives requested this node.
	SourceFiles []string

	// Document is the raw node tree.
	Document map[string]any
}

// NormalizedSpec pairs a node id with its normalised content and hash.
// Specs are rebuilt fresh every run and never mutated in place; the
// persisted copy for an id is overwritten or deleted, never edited.
type NormalizedSpec struct {
	// ID is the node id.
	ID string `json:"id"`

	// Name is the node's display name at generation time.
	Name string `json:"name"`

	// Type is the remote node type.
	Type string `json:"type"`

	// SourceFile is the primary source file tracking this node.
	SourceFile string `json:"sourceFile,omitempty"`

	// FileKey identifies the remote file.
	FileKey string `json:"fileKey"`

	// Node is the normalised node tree.
	Node Object `json:"node"`

	// ContentHash is the 16-hex-char digest of the canonical serialization.
	// For variant sets it also covers the ordered variant hashes.
	ContentHash string `json:"contentHash"`

	// GeneratedAt is when this spec was built.
	GeneratedAt time.Time `json:"generatedAt"`

	// Variants holds one spec per child for variant-set nodes,
	// in the authoritative child order. Nil otherwise.
	Variants []*NormalizedSpec `json:"variants,omitempty"`
}

// Variant returns the variant spec with the given id, or nil.
func (s *NormalizedSpec) Variant(id string) *NormalizedSpec {
	for _, v := range s.Variants {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// TrackResult is the outcome of one tracking run. It is transient:
// downstream consumers read it, nothing persists it.
type TrackResult struct {
	// RunID uniquely identifies this run.
	RunID string `json:"runId"`

	// GeneratedAt is when the run completed.
	GeneratedAt time.Time `json:"generatedAt"`

	// Detection classifies every tracked id as added/changed/removed.
	Detection ChangeDetectionResult `json:"detection"`

	// Specs is the fresh id-to-spec map built this run.
	Specs map[string]*NormalizedSpec `json:"specs"`

	// Changes holds the property changes per changed node id.
	Changes map[string][]PropertyChange `json:"changes,omitempty"`

	// VariantChanges holds the variant-level changes per changed node id.
	VariantChanges map[string][]VariantChange `json:"variantChanges,omitempty"`

	// Stats are the counters accumulated over the run.
	Stats RunStats `json:"stats"`

	// DryRun reports whether persistence was skipped.
	DryRun bool `json:"dryRun,omitempty"`
}
