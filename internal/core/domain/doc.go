// Package domain defines the core business entities for Spectrail.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Directive: A source-derived declaration of tracked remote nodes
//   - FetchRequest: Directives grouped per remote file for batched fetching
//   - RawNode: A node document as returned by the remote design API
//   - NormalizedSpec: A node's normalised content paired with its hash
//   - Value: The tagged representation of normalised node data
//   - APIError: The closed taxonomy of fetch-layer failures
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
