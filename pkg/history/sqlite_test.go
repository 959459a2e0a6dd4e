package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"helios-ops/sweeper/pkg/sweep"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func resultAt(started time.Time) *sweep.Result {
	return &sweep.Result{
		StartedAt:      started,
		FinishedAt:     started.Add(3 * time.Second),
		FilesPlanned:   5,
		FilesPurged:    4,
		DirsRemoved:    1,
		BytesReclaimed: 1 << 20,
	}
}

// TestSQLiteStore_RecordAndList tests basic journaling.
func TestSQLiteStore_RecordAndList(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := NewRecord("purge", resultAt(time.Now().Add(-time.Hour)))
	if err := store.Record(ctx, rec); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.ID != rec.ID {
		t.Errorf("Expected ID %s, got %s", rec.ID, got.ID)
	}
	if got.Mode != "purge" {
		t.Errorf("Expected mode purge, got %s", got.Mode)
	}
	if got.FilesPurged != 4 {
		t.Errorf("Expected 4 files purged, got %d", got.FilesPurged)
	}
	if got.BytesReclaimed != 1<<20 {
		t.Errorf("Expected %d bytes reclaimed, got %d", 1<<20, got.BytesReclaimed)
	}
}

// TestSQLiteStore_ListOrderAndLimit tests most-recent-first ordering
// and the limit.
func TestSQLiteStore_ListOrderAndLimit(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Now().Add(-3 * time.Hour)
	for i := 0; i < 3; i++ {
		rec := NewRecord("execute", resultAt(base.Add(time.Duration(i)*time.Hour)))
		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	records, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if !records[0].StartedAt.After(records[1].StartedAt) {
		t.Errorf("Expected most recent first, got %v then %v",
			records[0].StartedAt, records[1].StartedAt)
	}
}

// TestSQLiteStore_Prune tests retention of the journal itself.
func TestSQLiteStore_Prune(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	old := NewRecord("execute", resultAt(time.Now().Add(-30*24*time.Hour)))
	recent := NewRecord("execute", resultAt(time.Now().Add(-time.Hour)))
	for _, rec := range []*Record{old, recent} {
		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	pruned, err := store.Prune(ctx, time.Now().Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("Expected 1 record pruned, got %d", pruned)
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != recent.ID {
		t.Errorf("Expected only the recent record to survive, got %v", records)
	}
}

// TestSQLiteStore_ErrorRecord tests that failed runs journal their
// error text.
func TestSQLiteStore_ErrorRecord(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	rec := NewRecord("execute", nil)
	rec.Error = "policy file missing"
	if err := store.Record(ctx, rec); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	records, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Error != "policy file missing" {
		t.Errorf("Expected error text to round-trip, got %q", records[0].Error)
	}
}

// TestNewRecord_NilResult tests record construction for runs that
// failed before producing a result.
func TestNewRecord_NilResult(t *testing.T) {
	rec := NewRecord("execute", nil)
	if rec.ID == "" {
		t.Error("Expected a generated ID")
	}
	if rec.StartedAt.IsZero() {
		t.Error("Expected a start time")
	}
	if rec.FilesPurged != 0 || rec.Failures != 0 {
		t.Errorf("Expected zero counters, got %+v", rec)
	}
}
