package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore is a Store backed by a local SQLite database. The
// database uses write-ahead logging and a single writer connection,
// which is plenty for one journal row per sweep.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS sweep_runs (
	id              TEXT PRIMARY KEY,
	mode            TEXT NOT NULL,
	dry_run         INTEGER NOT NULL,
	started_at      INTEGER NOT NULL,
	finished_at     INTEGER NOT NULL,
	files_planned   INTEGER NOT NULL,
	files_purged    INTEGER NOT NULL,
	dirs_removed    INTEGER NOT NULL,
	bytes_reclaimed INTEGER NOT NULL,
	warned          INTEGER NOT NULL,
	failures        INTEGER NOT NULL,
	error           TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_sweep_runs_started_at ON sweep_runs(started_at);
`

// NewSQLiteStore opens (creating if necessary) the journal database at
// path. Parent directories are created as needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("history database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	logger := slog.Default().With("component", "history.sqlite")
	logger.Debug("history store opened", "path", path)

	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// Record appends a run to the journal.
func (s *SQLiteStore) Record(ctx context.Context, rec *Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sweep_runs (
			id, mode, dry_run, started_at, finished_at,
			files_planned, files_purged, dirs_removed,
			bytes_reclaimed, warned, failures, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, boolToInt(rec.DryRun),
		rec.StartedAt.UnixNano(), rec.FinishedAt.UnixNano(),
		rec.FilesPlanned, rec.FilesPurged, rec.DirsRemoved,
		rec.BytesReclaimed, rec.Warned, rec.Failures, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record sweep run: %w", err)
	}
	return nil
}

// List returns up to limit records, most recent first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, dry_run, started_at, finished_at,
			files_planned, files_purged, dirs_removed,
			bytes_reclaimed, warned, failures, error
		FROM sweep_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep runs: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		var dryRun int
		var started, finished int64
		if err := rows.Scan(
			&rec.ID, &rec.Mode, &dryRun, &started, &finished,
			&rec.FilesPlanned, &rec.FilesPurged, &rec.DirsRemoved,
			&rec.BytesReclaimed, &rec.Warned, &rec.Failures, &rec.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sweep run: %w", err)
		}
		rec.DryRun = dryRun != 0
		rec.StartedAt = time.Unix(0, started)
		rec.FinishedAt = time.Unix(0, finished)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sweep runs: %w", err)
	}
	return records, nil
}

// Prune removes records that started before the cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sweep_runs WHERE started_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sweep runs: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned sweep runs: %w", err)
	}
	if deleted > 0 {
		s.logger.Debug("pruned sweep history", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
