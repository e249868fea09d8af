// Package sqlite provides the SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements the store interfaces through
// a single database connection:
//
//   - SpecStore: Normalised spec persistence, one record per tracked node
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Every spec row carries denormalised metadata columns for listing plus the full
// spec payload as JSON; the payload is authoritative when loading.
//
// # Data Location
//
// By default, the database is stored at ~/.spectrail/data/specs.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
