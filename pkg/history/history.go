package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"helios-ops/sweeper/pkg/sweep"
)

// Record is one sweep run as stored in the journal. Records are
// immutable once written.
type Record struct {
	// ID is a unique identifier for the run.
	ID string `json:"id"`

	// Mode is the operation that produced the run: "purge",
	// "execute", or "report".
	Mode string `json:"mode"`

	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	FilesPlanned   int   `json:"files_planned"`
	FilesPurged    int   `json:"files_purged"`
	DirsRemoved    int   `json:"dirs_removed"`
	BytesReclaimed int64 `json:"bytes_reclaimed"`
	Warned         int   `json:"warned"`
	Failures       int   `json:"failures"`

	// Error holds the run-level error text when the sweep could not
	// run at all; empty for runs that completed (even with per-entry
	// failures).
	Error string `json:"error,omitempty"`
}

// NewRecord builds a journal record from a sweep result. The result
// may be nil for runs that failed before producing one.
func NewRecord(mode string, result *sweep.Result) *Record {
	rec := &Record{
		ID:   uuid.New().String(),
		Mode: mode,
	}
	if result == nil {
		now := time.Now()
		rec.StartedAt = now
		rec.FinishedAt = now
		return rec
	}
	rec.DryRun = result.DryRun
	rec.StartedAt = result.StartedAt
	rec.FinishedAt = result.FinishedAt
	rec.FilesPlanned = result.FilesPlanned
	rec.FilesPurged = result.FilesPurged
	rec.DirsRemoved = result.DirsRemoved
	rec.BytesReclaimed = result.BytesReclaimed
	rec.Warned = result.Warned
	rec.Failures = len(result.Failures)
	return rec
}

// Store persists sweep run records.
type Store interface {
	// Record appends a run to the journal.
	Record(ctx context.Context, rec *Record) error

	// List returns up to limit records, most recent first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Prune removes records that started before the cutoff and
	// returns how many were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases any store resources.
	Close() error
}
