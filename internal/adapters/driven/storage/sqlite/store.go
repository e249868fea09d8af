package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/spectrail-labs/spectrail-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driven"
	"github.com/spectrail-labs/spectrail-cli/internal/logger"
)

// Store is a SQLite-based storage that provides access to the store
// interfaces through wrapper types sharing one database connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.spectrail/data/specs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".spectrail", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "specs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SpecStore returns a SpecStore interface backed by this store.
func (s *Store) SpecStore() driven.SpecStore {
	return &specStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_create_specs.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Spec Store ====================

// specStore implements driven.SpecStore.
type specStore struct {
	store *Store
}

var _ driven.SpecStore = (*specStore)(nil)

// Save stores or replaces the spec for a node id. The full spec is
// serialised into the payload column; metadata columns are denormalised
// for listing.
func (s *specStore) Save(ctx context.Context, spec *domain.NormalizedSpec) error {
	if spec == nil || spec.ID == "" {
		return domain.ErrInvalidInput
	}

	payload, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshalling spec %s: %w", spec.ID, err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO specs (node_id, file_key, name, type, source_file, content_hash, generated_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(node_id) DO UPDATE SET
			file_key = excluded.file_key,
			name = excluded.name,
			type = excluded.type,
			source_file = excluded.source_file,
			content_hash = excluded.content_hash,
			generated_at = excluded.generated_at,
			payload = excluded.payload
	`, spec.ID, spec.FileKey, spec.Name, spec.Type, spec.SourceFile,
		spec.ContentHash, spec.GeneratedAt.UTC(), string(payload))

	if err != nil {
		return fmt.Errorf("saving spec %s: %w", spec.ID, err)
	}
	return nil
}

// Load retrieves the spec for a node id.
func (s *specStore) Load(ctx context.Context, nodeID string) (*domain.NormalizedSpec, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT payload FROM specs WHERE node_id = ?", nodeID)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSpecNotFound
		}
		return nil, fmt.Errorf("scanning spec %s: %w", nodeID, err)
	}

	return unmarshalSpec(nodeID, payload)
}

// LoadAll returns every readable spec keyed by node id. A corrupt
// record is logged and skipped so one bad row never blocks a run; it
// is repaired by the next successful Save.
func (s *specStore) LoadAll(ctx context.Context) (map[string]*domain.NormalizedSpec, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT node_id, payload FROM specs")
	if err != nil {
		return nil, fmt.Errorf("querying specs: %w", err)
	}
	defer rows.Close()

	specs := make(map[string]*domain.NormalizedSpec)
	for rows.Next() {
		var nodeID, payload string
		if err := rows.Scan(&nodeID, &payload); err != nil {
			return nil, fmt.Errorf("scanning spec row: %w", err)
		}

		spec, err := unmarshalSpec(nodeID, payload)
		if err != nil {
			logger.Warn("Skipping corrupt spec record %s: %v", nodeID, err)
			continue
		}
		specs[nodeID] = spec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating specs: %w", err)
	}

	return specs, nil
}

// Delete removes the spec for a node id. Deleting a missing id is not
// an error.
func (s *specStore) Delete(ctx context.Context, nodeID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM specs WHERE node_id = ?", nodeID)
	if err != nil {
		return fmt.Errorf("deleting spec %s: %w", nodeID, err)
	}
	return nil
}

// ListIDs returns the ids of all stored specs in sorted order.
func (s *specStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT node_id FROM specs ORDER BY node_id")
	if err != nil {
		return nil, fmt.Errorf("querying spec ids: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning spec id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spec ids: %w", err)
	}

	return ids, nil
}

func unmarshalSpec(nodeID, payload string) (*domain.NormalizedSpec, error) {
	var spec domain.NormalizedSpec
	if err := json.Unmarshal([]byte(payload), &spec); err != nil {
		return nil, fmt.Errorf("unmarshalling spec %s: %w", nodeID, err)
	}
	return &spec, nil
}
