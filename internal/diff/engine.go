package diff

import (
	"sort"
	"strconv"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// Changes walks two normalised trees and returns one change per path
// at which they differ. Output order is deterministic: depth-first,
// object keys in lexicographic order, array indices ascending. Two
// trees with equal canonical strings produce no changes.
func Changes(prev, next domain.Value) []domain.PropertyChange {
	var changes []domain.PropertyChange
	walk("", prev, next, &changes)
	return changes
}

func walk(path string, prev, next domain.Value, changes *[]domain.PropertyChange) {
	prevMissing := isMissing(prev)
	nextMissing := isMissing(next)

	switch {
	case prevMissing && nextMissing:
		// Explicit null on one side and an absent key on the other
		// still differ canonically.
		if (prev == nil) != (next == nil) {
			record(path, prev, next, changes)
		}
		return
	case prevMissing || nextMissing:
		record(path, prev, next, changes)
		return
	}

	switch pv := prev.(type) {
	case domain.Object:
		nv, ok := next.(domain.Object)
		if !ok {
			record(path, prev, next, changes)
			return
		}
		for _, key := range unionKeys(pv, nv) {
			walk(path+"."+key, pv[key], nv[key], changes)
		}
	case domain.Array:
		nv, ok := next.(domain.Array)
		if !ok {
			record(path, prev, next, changes)
			return
		}
		for i := 0; i < len(pv) || i < len(nv); i++ {
			walk(path+"["+strconv.Itoa(i)+"]", elem(pv, i), elem(nv, i), changes)
		}
	default:
		// Scalars, including a scalar facing a container: one change
		// at this path, no recursion.
		if !domain.Equal(prev, next) {
			record(path, prev, next, changes)
		}
	}
}

func record(path string, prev, next domain.Value, changes *[]domain.PropertyChange) {
	*changes = append(*changes, domain.PropertyChange{
		Path:          path,
		PreviousValue: renderValue(prev),
		NewValue:      renderValue(next),
	})
}

// isMissing reports whether v is absent or an explicit JSON null.
func isMissing(v domain.Value) bool {
	if v == nil {
		return true
	}
	_, null := v.(domain.Null)
	return null
}

// unionKeys returns the sorted union of both objects' keys.
func unionKeys(a, b domain.Object) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for key := range a {
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	for key := range b {
		if _, ok := seen[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func elem(arr domain.Array, i int) domain.Value {
	if i < len(arr) {
		return arr[i]
	}
	return nil
}
