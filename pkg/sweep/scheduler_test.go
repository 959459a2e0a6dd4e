package sweep

import (
	"context"
	"testing"
	"time"
)

// TestScheduler_StartStop tests the scheduler lifecycle.
func TestScheduler_StartStop(t *testing.T) {
	p := newTestPurger(t, t.TempDir(), false)
	s := NewScheduler(p, "0 3 * * *", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !s.IsRunning() {
		t.Error("Expected scheduler to be running")
	}

	next := s.NextRun()
	if next == nil {
		t.Fatal("Expected a next run time")
	}
	if !next.After(time.Now()) {
		t.Errorf("Expected next run in the future, got %v", next)
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("Expected scheduler to be stopped")
	}
}

// TestScheduler_EmptySchedule tests that an empty schedule is a no-op.
func TestScheduler_EmptySchedule(t *testing.T) {
	p := newTestPurger(t, t.TempDir(), false)
	s := NewScheduler(p, "", nil, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.IsRunning() {
		t.Error("Expected scheduler not to run with empty schedule")
	}
}

// TestScheduler_InvalidSchedule tests cron expression validation.
func TestScheduler_InvalidSchedule(t *testing.T) {
	p := newTestPurger(t, t.TempDir(), false)
	s := NewScheduler(p, "not a cron line", nil, nil)

	if err := s.Start(context.Background()); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}

// TestScheduler_ContextCancelStops tests that cancelling the context
// stops the scheduler.
func TestScheduler_ContextCancelStops(t *testing.T) {
	p := newTestPurger(t, t.TempDir(), false)
	s := NewScheduler(p, "0 3 * * *", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for s.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.IsRunning() {
		t.Error("Expected scheduler to stop after context cancellation")
	}
}
