// Package state persists lint results between runs in SQLite.
//
// The files table caches each file's findings keyed by path, the SHA-256 of
// its content and the SHA-256 of the effective rule configuration; a lookup
// only hits when both hashes match. The runs table records run history.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leapstack-labs/pinelint/pkg/core"
)

// DefaultPath is the cache location relative to the working directory.
const DefaultPath = ".pinelint/cache.db"

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Entry is a cached lint result for one file.
type Entry struct {
	Path        string
	ContentHash string
	ConfigHash  string
	Findings    []core.Finding
	UpdatedAt   time.Time
}

// Run is one recorded lint or fix invocation.
type Run struct {
	ID           string     `json:"id"`
	Command      string     `json:"command"`
	Status       RunStatus  `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	FileCount    int        `json:"file_count"`
	FindingCount int        `json:"finding_count"`
}

// Store is the lint cache used by the batch engine.
type Store interface {
	Lookup(path, contentHash, configHash string) ([]core.Finding, bool, error)
	Put(entry Entry) error
	CreateRun(command string) (*Run, error)
	CompleteRun(id string, status RunStatus, files, findings int) error
	Close() error
}

// ContentHash returns the hex SHA-256 of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ConfigHash returns the hex SHA-256 of the JSON encoding of parts.
func ConfigHash(parts ...any) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		if err := enc.Encode(p); err != nil {
			return "", fmt.Errorf("failed to hash config: %w", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
