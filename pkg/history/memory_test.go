package history

import (
	"context"
	"testing"
	"time"
)

// TestMemoryStore tests the in-memory journal used by tests and
// one-off runs.
func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	base := time.Now().Add(-2 * time.Hour)
	first := NewRecord("purge", resultAt(base))
	second := NewRecord("purge", resultAt(base.Add(time.Hour)))
	for _, rec := range []*Record{first, second} {
		if err := store.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != second.ID {
		t.Errorf("Expected most recent record first, got %s", records[0].ID)
	}

	pruned, err := store.Prune(ctx, base.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("Expected 1 record pruned, got %d", pruned)
	}
}
