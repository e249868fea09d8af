// Package normaliser turns raw node documents into their canonical,
// comparison-ready form.
//
// Normalisation rebuilds a node tree with deterministic key ordering,
// drops volatile fields that change between exports without any design
// intent (bounding boxes, transforms, plugin data), and applies the
// caller's include and exclude lists. The canonical serialisation of a
// normalised tree is the sole input to content hashing, so two exports
// that differ only in key order or volatile fields hash identically.
//
// Normalisation is a pure transformation: the same input always yields
// the same output, and normalising an already-normalised tree is a
// no-op.
package normaliser
