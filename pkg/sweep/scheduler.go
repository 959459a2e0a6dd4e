package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Observer is notified after each scheduled sweep with the plan, the
// result, and any error. Plan and result may be nil when err is
// non-nil.
type Observer func(plan *Plan, result *Result, err error)

// Scheduler runs Execute on a cron schedule, e.g. nightly at 3 AM.
type Scheduler struct {
	purger   *Purger
	schedule string
	observer Observer
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler that executes sweeps on the given
// cron schedule. The observer, if non-nil, is invoked after every run.
//
// Common schedule expressions:
//   - "0 3 * * *"    - daily at 3 AM
//   - "0 */6 * * *"  - every 6 hours
//   - "0 0 * * 0"    - weekly on Sunday at midnight
func NewScheduler(purger *Purger, schedule string, observer Observer, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		purger:   purger,
		schedule: schedule,
		observer: observer,
		cron:     cron.New(),
		logger:   logger.With("component", "sweep.scheduler"),
	}
}

// Start begins scheduled sweeping. If the schedule is empty, the
// scheduler does nothing and Start returns immediately without error.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("sweep scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSweep executes a single scheduled sweep.
func (s *Scheduler) runSweep(ctx context.Context) {
	s.logger.Info("starting scheduled sweep")

	plan, result, err := s.purger.Execute(ctx)
	if s.observer != nil {
		s.observer(plan, result, err)
	}
	if err != nil {
		s.logger.Error("scheduled sweep failed", "error", err)
		return
	}

	if result.FilesPurged > 0 || result.Failed() {
		s.logger.Info("scheduled sweep completed",
			"files_purged", result.FilesPurged,
			"bytes_reclaimed", result.BytesReclaimed,
			"failures", len(result.Failures),
		)
	} else {
		s.logger.Debug("scheduled sweep completed, nothing purged")
	}
}

// Stop stops the scheduler and waits for a running sweep to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("sweep scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled sweep time, or nil when no sweep
// is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
