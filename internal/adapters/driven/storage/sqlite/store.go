package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/inkpot-labs/inkpot/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides the notebook,
// source and chunk store interfaces through wrapper types sharing one
// connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.inkpot/data/inkpot.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkpot", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "inkpot.db")

	// WAL mode for better concurrency between the CLI and TUI paths.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Cascades in the schema depend on foreign keys being enforced.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
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

// NotebookStore returns a NotebookStore interface backed by this store.
func (s *Store) NotebookStore() driven.NotebookStore {
	return &notebookStore{store: s}
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1).
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
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

// ==================== Notebook Store ====================

type notebookStore struct {
	store *Store
}

var _ driven.NotebookStore = (*notebookStore)(nil)

func (n *notebookStore) SaveNotebook(ctx context.Context, notebook *domain.Notebook) error {
	_, err := n.store.db.ExecContext(ctx,
		"INSERT INTO notebooks (id, title, created_at) VALUES (?, ?, ?)",
		notebook.ID, notebook.Title, notebook.CreatedAt.UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("notebook %s: %w", notebook.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("saving notebook: %w", err)
	}
	return nil
}

func (n *notebookStore) GetNotebook(ctx context.Context, id string) (*domain.Notebook, error) {
	var nb domain.Notebook
	err := n.store.db.QueryRowContext(ctx,
		"SELECT id, title, created_at FROM notebooks WHERE id = ?", id).
		Scan(&nb.ID, &nb.Title, &nb.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notebook %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting notebook: %w", err)
	}
	return &nb, nil
}

func (n *notebookStore) ListNotebooks(ctx context.Context) ([]domain.Notebook, error) {
	rows, err := n.store.db.QueryContext(ctx,
		"SELECT id, title, created_at FROM notebooks ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("listing notebooks: %w", err)
	}
	defer rows.Close()

	var out []domain.Notebook
	for rows.Next() {
		var nb domain.Notebook
		if err := rows.Scan(&nb.ID, &nb.Title, &nb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notebook: %w", err)
		}
		out = append(out, nb)
	}
	return out, rows.Err()
}

func (n *notebookStore) DeleteNotebook(ctx context.Context, id string) error {
	res, err := n.store.db.ExecContext(ctx, "DELETE FROM notebooks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting notebook: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting notebook: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notebook %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ==================== Source Store ====================

type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

func (s *sourceStore) SaveSource(ctx context.Context, source *domain.Source) error {
	// First ingestion wins; re-saving an existing source is a no-op.
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sources (notebook_id, id, type, url, path, enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(notebook_id, id) DO NOTHING`,
		source.NotebookID, source.ID, string(source.Type),
		source.URL, source.Path, source.Enabled, source.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving source: %w", err)
	}
	return nil
}

func (s *sourceStore) ListSources(ctx context.Context, notebookID string) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT s.id, s.type, s.url, s.path, s.enabled, s.created_at,
		       COUNT(c.id)
		FROM sources s
		LEFT JOIN chunks c ON c.notebook_id = s.notebook_id AND c.source_id = s.id
		WHERE s.notebook_id = ?
		GROUP BY s.id
		ORDER BY s.created_at, s.id`, notebookID)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	defer rows.Close()

	var out []domain.Source
	for rows.Next() {
		src := domain.Source{NotebookID: notebookID}
		var srcType string
		if err := rows.Scan(&src.ID, &srcType, &src.URL, &src.Path,
			&src.Enabled, &src.CreatedAt, &src.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		src.Type = domain.SourceType(srcType)
		out = append(out, src)
	}
	return out, rows.Err()
}

func (s *sourceStore) SetEnabled(ctx context.Context, notebookID, sourceID string, enabled bool) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE sources SET enabled = ? WHERE notebook_id = ? AND id = ?",
		enabled, notebookID, sourceID)
	if err != nil {
		return fmt.Errorf("updating source: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating source: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("source %s: %w", sourceID, domain.ErrNotFound)
	}
	return nil
}

func (s *sourceStore) DeleteSource(ctx context.Context, notebookID, sourceID string) error {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM sources WHERE notebook_id = ? AND id = ?", notebookID, sourceID)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("source %s: %w", sourceID, domain.ErrNotFound)
	}
	return nil
}

// ==================== Chunk Store ====================

type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

func (c *chunkStore) SaveChunks(ctx context.Context, notebookID string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// seq preserves batch insertion order across saves; a replaced
	// chunk keeps its original position.
	var nextSeq int64
	row := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), -1) + 1 FROM chunks WHERE notebook_id = ?", notebookID)
	if err := row.Scan(&nextSeq); err != nil {
		return fmt.Errorf("getting next seq: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (notebook_id, id, source_id, source_type, content, location, url, path, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(notebook_id, id) DO UPDATE SET
			source_id = excluded.source_id,
			source_type = excluded.source_type,
			content = excluded.content,
			location = excluded.location,
			url = excluded.url,
			path = excluded.path`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		_, err := stmt.ExecContext(ctx,
			notebookID, chunk.ID, chunk.SourceID, string(chunk.SourceType),
			chunk.Text, chunk.Location, chunk.URL, chunk.Path, nextSeq)
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
		}
		nextSeq++
	}
	return tx.Commit()
}

func (c *chunkStore) LoadEnabledChunks(ctx context.Context, notebookID string) ([]domain.Chunk, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT c.id, c.source_id, c.source_type, c.content, c.location, c.url, c.path
		FROM chunks c
		JOIN sources s ON s.notebook_id = c.notebook_id AND s.id = c.source_id
		WHERE c.notebook_id = ? AND s.enabled = 1
		ORDER BY c.seq`, notebookID)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	defer rows.Close()

	var out []domain.Chunk
	for rows.Next() {
		chunk := domain.Chunk{Enabled: true}
		var srcType string
		if err := rows.Scan(&chunk.ID, &chunk.SourceID, &srcType,
			&chunk.Text, &chunk.Location, &chunk.URL, &chunk.Path); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.SourceType = domain.SourceType(srcType)
		out = append(out, chunk)
	}
	return out, rows.Err()
}

func (c *chunkStore) CountChunks(ctx context.Context, notebookID string) (int, error) {
	var n int
	err := c.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE notebook_id = ?", notebookID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}
