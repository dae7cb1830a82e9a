package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"nfog/internal/catalog"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes. Old cache files are
// rebuilt rather than migrated.
const schemaVersion = 1

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store is an SQLite-backed catalog response cache.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates or opens the cache database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached title for provider and key when it is younger than
// maxAge. A non-positive maxAge accepts any age.
func (s *Store) Get(ctx context.Context, provider, key string, maxAge time.Duration) (catalog.Title, bool, error) {
	var (
		payload   string
		fetchedAt int64
	)
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT payload, fetched_at FROM catalog_cache WHERE provider = ? AND key = ?",
			provider, key,
		).Scan(&payload, &fetchedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Title{}, false, nil
	}
	if err != nil {
		return catalog.Title{}, false, fmt.Errorf("read cache entry: %w", err)
	}
	if maxAge > 0 && s.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return catalog.Title{}, false, nil
	}
	var title catalog.Title
	if err := json.Unmarshal([]byte(payload), &title); err != nil {
		return catalog.Title{}, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return title, true, nil
}

// Put stores title under provider and key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, provider, key string, title catalog.Title) error {
	payload, err := json.Marshal(title)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO catalog_cache (provider, key, payload, fetched_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(provider, key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
			provider, key, string(payload), s.now().Unix(),
		)
		return err
	})
}

// Purge deletes entries older than maxAge, or every entry when maxAge is
// not positive. It returns the number of rows removed.
func (s *Store) Purge(ctx context.Context, maxAge time.Duration) (int64, error) {
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		if maxAge <= 0 {
			res, execErr = s.db.ExecContext(ctx, "DELETE FROM catalog_cache")
		} else {
			cutoff := s.now().Add(-maxAge).Unix()
			res, execErr = s.db.ExecContext(ctx, "DELETE FROM catalog_cache WHERE fetched_at < ?", cutoff)
		}
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version == schemaVersion {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range []string{"DROP TABLE IF EXISTS catalog_cache", "DROP TABLE IF EXISTS schema_version"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset cache schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema reset: %w", err)
	}
	return s.createSchema(ctx)
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil || !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
