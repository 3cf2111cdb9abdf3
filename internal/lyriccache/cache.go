package lyriccache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the cache with 'lyricdeck cache clear'.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages cleaned-lyric persistence backed by SQLite.
type Store struct {
	db    *sql.DB
	path  string
	model string
}

// Stats summarizes cache contents for operator inspection.
type Stats struct {
	Path      string
	Entries   int64
	SizeBytes int64
	Models    []ModelCount
}

// ModelCount counts cache entries produced by one model.
type ModelCount struct {
	Model   string
	Entries int64
}

// Key derives the cache key for raw lyric text cleaned by model.
func Key(model, rawText string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + rawText))
	return hex.EncodeToString(sum[:])
}

// Open initializes or connects to the lyric cache database at path. The
// model identifier salts every key written or read through this store.
func Open(path, model string) (*Store, error) {
	if path == "" {
		return nil, errors.New("lyric cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, model: model}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Lookup returns the cached cleaning of rawText for this store's model.
func (s *Store) Lookup(ctx context.Context, rawText string) (string, bool, error) {
	var cleaned string
	err := s.db.QueryRowContext(
		ctx,
		"SELECT cleaned_text FROM cleaned_lyrics WHERE cache_key = ?",
		Key(s.model, rawText),
	).Scan(&cleaned)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup cleaned lyrics: %w", err)
	}
	return cleaned, true, nil
}

// Save stores the cleaning of rawText, replacing any previous entry for the
// same raw text and model.
func (s *Store) Save(ctx context.Context, rawText, cleaned string) error {
	_, err := s.db.ExecContext(
		ctx,
		"INSERT OR REPLACE INTO cleaned_lyrics (cache_key, model, cleaned_text, created_at) VALUES (?, ?, ?, ?)",
		Key(s.model, rawText),
		s.model,
		cleaned,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save cleaned lyrics: %w", err)
	}
	return nil
}

// Stats reports entry counts overall and per model, plus the database file
// size on disk.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Path: s.path}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM cleaned_lyrics").Scan(&stats.Entries); err != nil {
		return stats, fmt.Errorf("count cache entries: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT model, COUNT(1) FROM cleaned_lyrics GROUP BY model ORDER BY model")
	if err != nil {
		return stats, fmt.Errorf("count entries per model: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mc ModelCount
		if err := rows.Scan(&mc.Model, &mc.Entries); err != nil {
			return stats, fmt.Errorf("scan model count: %w", err)
		}
		stats.Models = append(stats.Models, mc)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate model counts: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil {
		stats.SizeBytes = info.Size()
	}
	return stats, nil
}

// Clear removes every cache entry and returns the number deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cleaned_lyrics")
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared rows: %w", err)
	}
	return removed, nil
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
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'lyricdeck cache clear' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
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
