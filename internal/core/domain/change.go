package domain

import "sort"

// ChangeDetectionResult classifies one run's tracked ids against the
// previously persisted set. Unchanged ids do not appear. The result is
// transient and never persisted.
type ChangeDetectionResult struct {
	// HasChanges reports whether any id was added, changed or removed.
	HasChanges bool `json:"hasChanges"`

	// Added lists ids with no prior persisted record.
	Added []string `json:"added"`

	// Changed lists ids whose content hash differs from the persisted one.
	Changed []string `json:"changed"`

	// Removed lists persisted ids absent from the fresh set.
	Removed []string `json:"removed"`
}

// PropertyChange is one point of difference between two normalised
// trees. Values are bounded display strings, never raw structures.
type PropertyChange struct {
	// Path addresses the differing property (".fills[0].color").
	Path string `json:"path"`

	// PreviousValue renders the old side ("undefined" when absent).
	PreviousValue string `json:"previousValue"`

	// NewValue renders the new side ("undefined" when absent).
	NewValue string `json:"newValue"`
}

// VariantStatus classifies a variant-level change.
type VariantStatus string

const (
	VariantAdded   VariantStatus = "added"
	VariantRemoved VariantStatus = "removed"
	VariantChanged VariantStatus = "changed"
)

// VariantChange records one variant's fate between two variant-set
// specs. Changed variants carry their own recursive property changes,
// kept separate from the parent's changes.
type VariantChange struct {
	// ID is the variant node id.
	ID string `json:"id"`

	// Name is the variant's display name (from the newer side when present).
	Name string `json:"name"`

	// Status is added, removed or changed.
	Status VariantStatus `json:"status"`

	// Changes holds the variant's own property changes when Status is changed.
	Changes []PropertyChange `json:"changes,omitempty"`
}

// DetectChanges classifies fresh specs against persisted ones by id.
// Pure function of the two maps: added when no prior record exists,
// changed when the content hash differs, removed when a persisted id is
// absent from fresh. Output slices are sorted, so the result never
// depends on either map's iteration order.
func DetectChanges(persisted, fresh map[string]*NormalizedSpec) ChangeDetectionResult {
	var result ChangeDetectionResult

	for id, spec := range fresh {
		prior, ok := persisted[id]
		if !ok {
			result.Added = append(result.Added, id)
			continue
		}
		if prior.ContentHash != spec.ContentHash {
			result.Changed = append(result.Changed, id)
		}
	}

	for id := range persisted {
		if _, ok := fresh[id]; !ok {
			result.Removed = append(result.Removed, id)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Changed)
	sort.Strings(result.Removed)

	result.HasChanges = len(result.Added) > 0 || len(result.Changed) > 0 || len(result.Removed) > 0
	return result
}
