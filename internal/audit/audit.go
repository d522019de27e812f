// Package audit records delivered documentation fragments in SQLite.
//
// Auditing is an optional subsystem: if it fails to initialize the server
// logs a warning and injection continues without it. The log answers
// "what context has this workspace actually been fed, and how often" —
// useful when tuning filenames or max_context_size.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Injection is one delivered fragment.
type Injection struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Bytes     int    `json:"bytes"`
	Truncated bool   `json:"truncated"`
	CreatedAt string `json:"created_at"`
}

// Stats holds aggregate injection statistics.
type Stats struct {
	TotalInjections int      `json:"total_injections"`
	TotalSessions   int      `json:"total_sessions"`
	TotalBytes      int64    `json:"total_bytes"`
	Paths           []string `json:"paths"`
}

// Config holds audit store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration for the audit store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".dirdocs")}
}

// Store is the injection audit log backed by SQLite.
type Store struct {
	db *sql.DB
}

// New creates a Store with the given configuration. It creates the data
// directory if needed and opens SQLite in WAL mode.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("audit: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "audit.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("audit: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("audit: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS injections (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			path       TEXT NOT NULL,
			bytes      INTEGER NOT NULL,
			truncated  INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_injections_session ON injections(session_id);
		CREATE INDEX IF NOT EXISTS idx_injections_path ON injections(path);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record logs one delivered fragment.
func (s *Store) Record(sessionID, path string, bytes int, truncated bool) error {
	_, err := s.db.Exec(
		`INSERT INTO injections (session_id, path, bytes, truncated, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, path, bytes, truncated, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("audit: record injection: %w", err)
	}
	return nil
}

// Recent returns the latest injections, newest first.
func (s *Store) Recent(limit int) ([]Injection, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, path, bytes, truncated, created_at
		 FROM injections ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("audit: query recent: %w", err)
	}
	defer rows.Close()

	var out []Injection
	for rows.Next() {
		var inj Injection
		if err := rows.Scan(&inj.ID, &inj.SessionID, &inj.Path, &inj.Bytes, &inj.Truncated, &inj.CreatedAt); err != nil {
			return nil, fmt.Errorf("audit: scan injection: %w", err)
		}
		out = append(out, inj)
	}
	return out, rows.Err()
}

// Aggregate returns totals across the whole log.
func (s *Store) Aggregate() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT session_id), COALESCE(SUM(bytes), 0) FROM injections`,
	).Scan(&st.TotalInjections, &st.TotalSessions, &st.TotalBytes)
	if err != nil {
		return st, fmt.Errorf("audit: aggregate: %w", err)
	}

	rows, err := s.db.Query(`SELECT DISTINCT path FROM injections ORDER BY path`)
	if err != nil {
		return st, fmt.Errorf("audit: distinct paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return st, fmt.Errorf("audit: scan path: %w", err)
		}
		st.Paths = append(st.Paths, p)
	}
	return st, rows.Err()
}
