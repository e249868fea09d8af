package normaliser

import (
	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// volatileKeys are dropped from every node during normalisation. They
// change between exports without any corresponding design change and
// would otherwise produce spurious diffs.
var volatileKeys = map[string]struct{}{
	"absoluteBoundingBox":  {},
	"absoluteRenderBounds": {},
	"relativeTransform":    {},
	"pluginData":           {},
	"sharedPluginData":     {},
}

// identityKeys always survive filtering, even under an include list.
// Without them a node loses its identity and its subtree.
var identityKeys = map[string]struct{}{
	"id":       {},
	"name":     {},
	"type":     {},
	"children": {},
}

// Options control which node properties survive normalisation.
type Options struct {
	// Include, when non-empty, keeps only the named properties plus the
	// identity properties (id, name, type, children). Naming a volatile
	// key here resurrects it.
	Include []string

	// Exclude drops the named properties in addition to the built-in
	// volatile set. Ignored when Include is non-empty.
	Exclude []string
}

// NormaliseNode rebuilds a raw node document into its canonical Object
// form. Filtering applies to the node itself and, recursively, to every
// node reached through "children"; values nested inside other
// properties are rebuilt without filtering. Explicit JSON nulls are
// preserved as distinct from absent keys.
func NormaliseNode(raw map[string]any, opts Options) domain.Object {
	node, ok := domain.FromAny(raw).(domain.Object)
	if !ok {
		return domain.Object{}
	}
	return filterNode(node, toSet(opts.Include), toSet(opts.Exclude))
}

// filterNode applies the property filter to a single node and recurses
// into its children.
func filterNode(node domain.Object, include, exclude map[string]struct{}) domain.Object {
	out := make(domain.Object, len(node))
	for key, val := range node {
		if !keepKey(key, include, exclude) {
			continue
		}
		if key == "children" {
			if children, ok := val.(domain.Array); ok {
				out[key] = filterChildren(children, include, exclude)
				continue
			}
		}
		out[key] = val
	}
	return out
}

// filterChildren filters each object child as a node in its own right.
// Non-object children pass through untouched.
func filterChildren(children domain.Array, include, exclude map[string]struct{}) domain.Array {
	out := make(domain.Array, len(children))
	for i, child := range children {
		if node, ok := child.(domain.Object); ok {
			out[i] = filterNode(node, include, exclude)
			continue
		}
		out[i] = child
	}
	return out
}

// keepKey decides whether a node property survives filtering.
func keepKey(key string, include, exclude map[string]struct{}) bool {
	if len(include) > 0 {
		if _, ok := include[key]; ok {
			return true
		}
		_, identity := identityKeys[key]
		return identity
	}
	if _, ok := volatileKeys[key]; ok {
		return false
	}
	_, excluded := exclude[key]
	return !excluded
}

func toSet(keys []string) map[string]struct{} {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
