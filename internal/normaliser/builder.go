package normaliser

import (
	"time"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// variantSetType marks nodes whose children are variants of a single
// component rather than independent layers.
const variantSetType = "COMPONENT_SET"

// BuildSpec normalises one raw node into a persistable spec.
//
// For variant sets the children become Variants: each child is built as
// a spec of its own, the children are removed from the parent's node,
// and the parent's content hash combines its own canonical string with
// the variant hashes in child order. For every other node the hash
// covers the full normalised tree.
func BuildSpec(raw *domain.RawNode, opts Options, now time.Time) *domain.NormalizedSpec {
	node := NormaliseNode(raw.Document, opts)

	spec := &domain.NormalizedSpec{
		ID:          raw.ID,
		Name:        fallbackString(raw.Name, stringField(raw.Document, "name")),
		Type:        fallbackString(raw.Type, stringField(raw.Document, "type")),
		FileKey:     raw.FileKey,
		SourceFile:  firstSource(raw.SourceFiles),
		Node:        node,
		GeneratedAt: now,
	}

	if spec.Type != variantSetType {
		spec.ContentHash = ContentHash(Canonical(node))
		return spec
	}

	spec.Variants = buildVariants(raw, opts, now)
	delete(spec.Node, "children")

	hashes := make([]string, len(spec.Variants))
	for i, v := range spec.Variants {
		hashes[i] = v.ContentHash
	}
	spec.ContentHash = ContentHash(Canonical(spec.Node), hashes...)
	return spec
}

// BuildSpecs builds a spec per fetched node, keyed by node id.
func BuildSpecs(nodes map[string]*domain.RawNode, opts Options, now time.Time) map[string]*domain.NormalizedSpec {
	specs := make(map[string]*domain.NormalizedSpec, len(nodes))
	for id, raw := range nodes {
		specs[id] = BuildSpec(raw, opts, now)
	}
	return specs
}

// buildVariants builds one spec per child of a variant set, preserving
// child order. Children that are not objects carry no design content
// and are skipped.
func buildVariants(raw *domain.RawNode, opts Options, now time.Time) []*domain.NormalizedSpec {
	children, ok := raw.Document["children"].([]any)
	if !ok {
		return nil
	}

	variants := make([]*domain.NormalizedSpec, 0, len(children))
	for _, child := range children {
		doc, ok := child.(map[string]any)
		if !ok {
			continue
		}
		variant := BuildSpec(&domain.RawNode{
			ID:          stringField(doc, "id"),
			FileKey:     raw.FileKey,
			Name:        stringField(doc, "name"),
			Type:        stringField(doc, "type"),
			SourceFiles: raw.SourceFiles,
			Document:    doc,
		}, opts, now)
		variants = append(variants, variant)
	}
	return variants
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func fallbackString(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

func firstSource(sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	return sources[0]
}
