// Package diff computes human-readable property changes between two
// normalised node trees.
//
// The engine walks both trees in lockstep and emits one change per
// path at which they differ, using ".key" for object properties and
// "[i]" for array elements. Values are rendered for display: colors as
// uppercase hex, missing properties as an "undefined" marker, larger
// subtrees as length-bounded JSON. Variant sets are diffed at the
// variant level so a single variant edit reads as one variant change
// rather than a list of deep child paths.
package diff
