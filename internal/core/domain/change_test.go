package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func spec(id, hash string) *NormalizedSpec {
	return &NormalizedSpec{ID: id, ContentHash: hash}
}

// TestDetectChanges tests added/changed/removed classification.
func TestDetectChanges(t *testing.T) {
	t.Run("classifies added changed and removed", func(t *testing.T) {
		persisted := map[string]*NormalizedSpec{
			"A": spec("A", "h1"),
			"B": spec("B", "h2"),
		}
		fresh := map[string]*NormalizedSpec{
			"A": spec("A", "h1"),
			"C": spec("C", "h3"),
		}

		result := DetectChanges(persisted, fresh)

		assert.True(t, result.HasChanges)
		assert.Equal(t, []string{"C"}, result.Added)
		assert.Empty(t, result.Changed)
		assert.Equal(t, []string{"B"}, result.Removed)
	})

	t.Run("hash difference marks changed", func(t *testing.T) {
		persisted := map[string]*NormalizedSpec{"A": spec("A", "h1")}
		fresh := map[string]*NormalizedSpec{"A": spec("A", "h9")}

		result := DetectChanges(persisted, fresh)

		assert.True(t, result.HasChanges)
		assert.Empty(t, result.Added)
		assert.Equal(t, []string{"A"}, result.Changed)
		assert.Empty(t, result.Removed)
	})

	t.Run("identical sets report no changes", func(t *testing.T) {
		persisted := map[string]*NormalizedSpec{"A": spec("A", "h1"), "B": spec("B", "h2")}
		fresh := map[string]*NormalizedSpec{"A": spec("A", "h1"), "B": spec("B", "h2")}

		result := DetectChanges(persisted, fresh)

		assert.False(t, result.HasChanges)
		assert.Empty(t, result.Added)
		assert.Empty(t, result.Changed)
		assert.Empty(t, result.Removed)
	})

	t.Run("empty persisted set marks everything added", func(t *testing.T) {
		fresh := map[string]*NormalizedSpec{"B": spec("B", "h2"), "A": spec("A", "h1")}

		result := DetectChanges(nil, fresh)

		assert.Equal(t, []string{"A", "B"}, result.Added)
		assert.Empty(t, result.Removed)
	})

	t.Run("empty fresh set marks everything removed", func(t *testing.T) {
		persisted := map[string]*NormalizedSpec{"B": spec("B", "h2"), "A": spec("A", "h1")}

		result := DetectChanges(persisted, nil)

		assert.Equal(t, []string{"A", "B"}, result.Removed)
		assert.Empty(t, result.Added)
	})

	t.Run("output is sorted regardless of map iteration order", func(t *testing.T) {
		fresh := make(map[string]*NormalizedSpec)
		for _, id := range []string{"z", "a", "m", "b", "q"} {
			fresh[id] = spec(id, "h")
		}

		result := DetectChanges(nil, fresh)
		assert.Equal(t, []string{"a", "b", "m", "q", "z"}, result.Added)
	})
}

// TestNormalizedSpec_Variant tests variant lookup by id.
func TestNormalizedSpec_Variant(t *testing.T) {
	parent := &NormalizedSpec{
		ID: "1:1",
		Variants: []*NormalizedSpec{
			{ID: "1:2", Name: "State=Default"},
			{ID: "1:3", Name: "State=Hover"},
		},
	}

	assert.Equal(t, "State=Hover", parent.Variant("1:3").Name)
	assert.Nil(t, parent.Variant("1:9"))
}
