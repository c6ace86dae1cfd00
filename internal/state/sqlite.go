package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/pinelint/pkg/core"
	_ "modernc.org/sqlite" // register the sqlite driver
)

var errNotOpened = errors.New("database not opened")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the database at path, creating its directory if needed, and
// migrates it. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// OpenDB wraps an existing connection without migrating it.
func (s *SQLiteStore) OpenDB(db *sql.DB) {
	s.db = db
}

// Path returns the database path passed to Open.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// --- File cache ---

// Lookup returns the cached findings for path when both hashes match.
func (s *SQLiteStore) Lookup(path, contentHash, configHash string) ([]core.Finding, bool, error) {
	if s.db == nil {
		return nil, false, errNotOpened
	}

	var raw string
	err := s.db.QueryRow(
		`SELECT findings FROM files WHERE path = ? AND content_hash = ? AND config_hash = ?`,
		path, contentHash, configHash,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up %s: %w", path, err)
	}

	var findings []core.Finding
	if err := json.Unmarshal([]byte(raw), &findings); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached findings for %s: %w", path, err)
	}
	if findings == nil {
		findings = []core.Finding{}
	}
	return findings, true, nil
}

// Put stores or replaces the entry for entry.Path.
func (s *SQLiteStore) Put(entry Entry) error {
	if s.db == nil {
		return errNotOpened
	}

	findings := entry.Findings
	if findings == nil {
		findings = []core.Finding{}
	}
	raw, err := json.Marshal(findings)
	if err != nil {
		return fmt.Errorf("failed to encode findings for %s: %w", entry.Path, err)
	}
	updated := entry.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	_, err = s.db.Exec(
		`INSERT INTO files (path, content_hash, config_hash, findings, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   config_hash = excluded.config_hash,
		   findings = excluded.findings,
		   updated_at = excluded.updated_at`,
		entry.Path, entry.ContentHash, entry.ConfigHash, string(raw), updated,
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", entry.Path, err)
	}
	return nil
}

// Forget drops the entry for path.
func (s *SQLiteStore) Forget(path string) error {
	if s.db == nil {
		return errNotOpened
	}
	if _, err := s.db.Exec(`DELETE FROM files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to forget %s: %w", path, err)
	}
	return nil
}

// --- Runs ---

// CreateRun records a new running invocation.
func (s *SQLiteStore) CreateRun(command string) (*Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	run := &Run{
		ID:        uuid.NewString(),
		Command:   command,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, command, status, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Command, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// CompleteRun finalises a run with its counts.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, files, findings int) error {
	if s.db == nil {
		return errNotOpened
	}

	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, completed_at = ?, file_count = ?, finding_count = ? WHERE id = ?`,
		status, time.Now().UTC(), files, findings, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	run, err := scanRun(s.db.QueryRow(
		`SELECT id, command, status, started_at, completed_at, file_count, finding_count FROM runs WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *SQLiteStore) RecentRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.Query(
		`SELECT id, command, status, started_at, completed_at, file_count, finding_count
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	run := &Run{}
	var completedAt sql.NullTime
	if err := row.Scan(&run.ID, &run.Command, &run.Status, &run.StartedAt,
		&completedAt, &run.FileCount, &run.FindingCount); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}
