package diff

import (
	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// Specs diffs one changed node against its persisted predecessor,
// returning the node's own property changes and its variant-level
// changes separately. A variant edit reads as one variant change, not
// a list of deep child paths on the parent.
func Specs(prev, next *domain.NormalizedSpec) ([]domain.PropertyChange, []domain.VariantChange) {
	return Changes(prev.Node, next.Node), VariantChanges(prev, next)
}

// VariantChanges matches the two specs' variants by id and classifies
// each as added, removed or changed. Changed variants carry their own
// property changes; unchanged variants are omitted. Added and changed
// variants appear in the order of the new spec, removed ones in the
// order of the old.
func VariantChanges(prev, next *domain.NormalizedSpec) []domain.VariantChange {
	var out []domain.VariantChange

	for _, variant := range next.Variants {
		old := prev.Variant(variant.ID)
		if old == nil {
			out = append(out, domain.VariantChange{
				ID:     variant.ID,
				Name:   variant.Name,
				Status: domain.VariantAdded,
			})
			continue
		}
		if old.ContentHash == variant.ContentHash {
			continue
		}
		out = append(out, domain.VariantChange{
			ID:      variant.ID,
			Name:    variant.Name,
			Status:  domain.VariantChanged,
			Changes: Changes(old.Node, variant.Node),
		})
	}

	for _, variant := range prev.Variants {
		if next.Variant(variant.ID) == nil {
			out = append(out, domain.VariantChange{
				ID:     variant.ID,
				Name:   variant.Name,
				Status: domain.VariantRemoved,
			})
		}
	}

	return out
}
