package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/drivesync/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// DatabaseFile is the name of the database file inside the data directory.
const DatabaseFile = "drivesync.db"

// Store is a SQLite-based storage that provides the cursor store, the
// search index and the run history through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.drivesync/data/drivesync.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".drivesync", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets status reads run alongside a sync
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// CursorStore returns a CursorStore interface backed by this store.
func (s *Store) CursorStore() driven.CursorStore {
	return &cursorStore{store: s}
}

// SearchIndex returns a SearchIndex interface backed by this store.
// Closing it does not close the store.
func (s *Store) SearchIndex() driven.SearchIndex {
	return &searchIndex{store: s}
}

// RunStore returns a RunStore interface backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// CountDocuments returns the number of documents in each index.
func (s *Store) CountDocuments(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT index_name, COUNT(*) FROM index_documents GROUP BY index_name
	`)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
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
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
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
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Cursor Store ====================

// cursorStore implements driven.CursorStore.
type cursorStore struct {
	store *Store
}

var _ driven.CursorStore = (*cursorStore)(nil)

// Get returns the token stored under key.
func (c *cursorStore) Get(ctx context.Context, key string) (string, error) {
	var token string
	err := c.store.db.QueryRowContext(ctx, "SELECT token FROM cursors WHERE key = ?", key).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading cursor: %w", err)
	}
	return token, nil
}

// Set stores token under key, replacing any previous value.
func (c *cursorStore) Set(ctx context.Context, key, token string) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO cursors (key, token, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at
	`, key, token)
	if err != nil {
		return fmt.Errorf("saving cursor: %w", err)
	}
	return nil
}

// ==================== Search Index ====================

// searchIndex implements driven.SearchIndex.
type searchIndex struct {
	store *Store
}

var _ driven.SearchIndex = (*searchIndex)(nil)

// Upsert writes docs into index as one transaction. Existing ids are replaced.
func (x *searchIndex) Upsert(ctx context.Context, index string, docs []domain.IndexDocument) error {
	return x.inTx(ctx, `
		INSERT INTO index_documents (index_name, id, body, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(index_name, id) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`, len(docs), func(stmt *sql.Stmt, i int) error {
		body, err := json.Marshal(docs[i])
		if err != nil {
			return fmt.Errorf("marshalling %s: %w", docs[i].DocumentID(), err)
		}
		_, err = stmt.ExecContext(ctx, index, docs[i].DocumentID(), string(body))
		return err
	})
}

// Delete removes ids from index as one transaction. Unknown ids are ignored.
func (x *searchIndex) Delete(ctx context.Context, index string, ids []string) error {
	return x.inTx(ctx, `
		DELETE FROM index_documents WHERE index_name = ? AND id = ?
	`, len(ids), func(stmt *sql.Stmt, i int) error {
		_, err := stmt.ExecContext(ctx, index, ids[i])
		return err
	})
}

// Close is a no-op; the Store owns the connection.
func (x *searchIndex) Close() error {
	return nil
}

// inTx prepares query once and runs exec for each of n items in a transaction.
func (x *searchIndex) inTx(ctx context.Context, query string, n int, exec func(*sql.Stmt, int) error) error {
	if n == 0 {
		return nil
	}

	tx, err := x.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("writing index document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

const selectRun = `
	SELECT id, mode, state, started_at, finished_at, error, report FROM sync_runs
`

// SaveRun inserts run or replaces the row with the same id.
func (r *runStore) SaveRun(ctx context.Context, run *domain.SyncRun) error {
	var report sql.NullString
	if run.Report != nil {
		body, err := json.Marshal(run.Report)
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		report = sql.NullString{String: string(body), Valid: true}
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, mode, state, started_at, finished_at, error, report)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode = excluded.mode,
			state = excluded.state,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			error = excluded.error,
			report = excluded.report
	`, run.ID, string(run.Mode), string(run.State),
		toMillis(run.StartedAt), toMillis(run.FinishedAt), run.Error, report)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// LatestRun returns the most recently started run.
func (r *runStore) LatestRun(ctx context.Context) (*domain.SyncRun, error) {
	return r.queryRun(ctx, selectRun+" ORDER BY started_at DESC, rowid DESC LIMIT 1")
}

// LastSuccessfulRun returns the most recently started successful run.
func (r *runStore) LastSuccessfulRun(ctx context.Context) (*domain.SyncRun, error) {
	return r.queryRun(ctx, selectRun+" WHERE state = ? ORDER BY started_at DESC, rowid DESC LIMIT 1",
		string(domain.RunSucceeded))
}

func (r *runStore) queryRun(ctx context.Context, query string, args ...any) (*domain.SyncRun, error) {
	var (
		run                   domain.SyncRun
		mode, state           string
		startedAt, finishedAt int64
		report                sql.NullString
	)
	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(
		&run.ID, &mode, &state, &startedAt, &finishedAt, &run.Error, &report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading run: %w", err)
	}

	run.Mode = domain.SyncMode(mode)
	run.State = domain.RunState(state)
	run.StartedAt = fromMillis(startedAt)
	run.FinishedAt = fromMillis(finishedAt)
	if report.Valid {
		run.Report = &domain.SyncReport{}
		if err := json.Unmarshal([]byte(report.String), run.Report); err != nil {
			return nil, fmt.Errorf("decoding report of run %s: %w", run.ID, err)
		}
	}
	return &run, nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
