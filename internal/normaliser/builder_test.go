package normaliser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

func rawButtonSet() *domain.RawNode {
	return &domain.RawNode{
		ID:          "10:1",
		FileKey:     "abc123",
		Name:        "Button",
		Type:        "COMPONENT_SET",
		SourceFiles: []string{"specs/button.json"},
		Document: map[string]any{
			"id":   "10:1",
			"name": "Button",
			"type": "COMPONENT_SET",
			"children": []any{
				map[string]any{
					"id":   "10:2",
					"name": "State=Default",
					"type": "COMPONENT",
					"fills": []any{
						map[string]any{"color": map[string]any{"r": 0.1, "g": 0.2, "b": 0.3}},
					},
				},
				map[string]any{
					"id":   "10:3",
					"name": "State=Hover",
					"type": "COMPONENT",
					"fills": []any{
						map[string]any{"color": map[string]any{"r": 0.4, "g": 0.5, "b": 0.6}},
					},
				},
			},
		},
	}
}

func TestBuildSpec_PlainNode(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := &domain.RawNode{
		ID:          "1:2",
		FileKey:     "abc123",
		Name:        "Card",
		Type:        "FRAME",
		SourceFiles: []string{"specs/card.json", "specs/page.json"},
		Document:    rawFrame(),
	}

	spec := BuildSpec(raw, Options{}, now)

	assert.Equal(t, "1:2", spec.ID)
	assert.Equal(t, "Card", spec.Name)
	assert.Equal(t, "FRAME", spec.Type)
	assert.Equal(t, "abc123", spec.FileKey)
	assert.Equal(t, "specs/card.json", spec.SourceFile)
	assert.Equal(t, now, spec.GeneratedAt)
	assert.Empty(t, spec.Variants)
	assert.Equal(t, ContentHash(Canonical(spec.Node)), spec.ContentHash)
}

// TestBuildSpec_VolatileFieldsDoNotAffectHash verifies that two exports
// differing only in volatile fields produce the same content hash.
func TestBuildSpec_VolatileFieldsDoNotAffectHash(t *testing.T) {
	now := time.Now()

	first := rawFrame()
	second := rawFrame()
	second["absoluteBoundingBox"] = map[string]any{"x": 999.0, "y": 999.0}

	a := BuildSpec(&domain.RawNode{ID: "1:2", Document: first}, Options{}, now)
	b := BuildSpec(&domain.RawNode{ID: "1:2", Document: second}, Options{}, now)

	assert.Equal(t, a.ContentHash, b.ContentHash)
}

func TestBuildSpec_HashSensitiveToContent(t *testing.T) {
	now := time.Now()

	first := rawFrame()
	second := rawFrame()
	second["cornerRadius"] = 8.0

	a := BuildSpec(&domain.RawNode{ID: "1:2", Document: first}, Options{}, now)
	b := BuildSpec(&domain.RawNode{ID: "1:2", Document: second}, Options{}, now)

	assert.NotEqual(t, a.ContentHash, b.ContentHash)
}

func TestBuildSpec_VariantSet(t *testing.T) {
	now := time.Now()
	spec := BuildSpec(rawButtonSet(), Options{}, now)

	require.Len(t, spec.Variants, 2)
	assert.Equal(t, "10:2", spec.Variants[0].ID)
	assert.Equal(t, "State=Default", spec.Variants[0].Name)
	assert.Equal(t, "10:3", spec.Variants[1].ID)
	assert.Equal(t, "abc123", spec.Variants[0].FileKey)

	// Children live in Variants, not in the parent tree.
	assert.NotContains(t, spec.Node, "children")

	want := ContentHash(Canonical(spec.Node), spec.Variants[0].ContentHash, spec.Variants[1].ContentHash)
	assert.Equal(t, want, spec.ContentHash)
}

// TestBuildSpec_VariantChangePropagates verifies that editing a single
// variant property changes both that variant's hash and the parent's.
func TestBuildSpec_VariantChangePropagates(t *testing.T) {
	now := time.Now()
	before := BuildSpec(rawButtonSet(), Options{}, now)

	edited := rawButtonSet()
	children := edited.Document["children"].([]any)
	fills := children[1].(map[string]any)["fills"].([]any)
	fills[0].(map[string]any)["color"].(map[string]any)["r"] = 0.9

	after := BuildSpec(edited, Options{}, now)

	assert.Equal(t, before.Variants[0].ContentHash, after.Variants[0].ContentHash)
	assert.NotEqual(t, before.Variants[1].ContentHash, after.Variants[1].ContentHash)
	assert.NotEqual(t, before.ContentHash, after.ContentHash)
}

func TestBuildSpec_VariantOrderSignificant(t *testing.T) {
	now := time.Now()
	before := BuildSpec(rawButtonSet(), Options{}, now)

	swapped := rawButtonSet()
	children := swapped.Document["children"].([]any)
	children[0], children[1] = children[1], children[0]

	after := BuildSpec(swapped, Options{}, now)

	assert.NotEqual(t, before.ContentHash, after.ContentHash)
}

func TestBuildSpecs(t *testing.T) {
	now := time.Now()
	nodes := map[string]*domain.RawNode{
		"1:2":  {ID: "1:2", Document: rawFrame()},
		"10:1": rawButtonSet(),
	}

	specs := BuildSpecs(nodes, Options{}, now)

	require.Len(t, specs, 2)
	assert.Equal(t, "1:2", specs["1:2"].ID)
	assert.Len(t, specs["10:1"].Variants, 2)
}
