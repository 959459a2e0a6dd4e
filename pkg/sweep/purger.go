package sweep

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"helios-ops/sweeper/pkg/policy"
)

// ErrPlanNotReady is returned when an operation needing a plan is
// requested but no plan has been built (or the last plan was consumed
// by a purge).
var ErrPlanNotReady = errors.New("no plan ready: run plan first")

// EntryFailure records a single entry that could not be removed.
type EntryFailure struct {
	Path  string `json:"path"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

// Result summarizes an executed (or dry-run) purge.
type Result struct {
	DryRun         bool           `json:"dry_run"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
	FilesPlanned   int            `json:"files_planned"`
	FilesPurged    int            `json:"files_purged"`
	FilesMissing   int            `json:"files_missing"`
	DirsRemoved    int            `json:"dirs_removed"`
	BytesReclaimed int64          `json:"bytes_reclaimed"`
	Warned         int            `json:"warned"`
	ScanFailures   int            `json:"scan_failures"`
	Failures       []EntryFailure `json:"failures,omitempty"`
}

// Failed reports whether any per-entry failure occurred during the
// sweep. Callers should exit non-zero, distinguishably from outright
// errors, when this is true.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Duration returns the wall-clock time the sweep took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Config configures a Purger.
type Config struct {
	// PolicyFile is the path of the YAML policy document. It is
	// re-read on every plan so policy edits take effect without a
	// restart.
	PolicyFile string

	// DryRun prevents Purge from mutating storage; it reports what
	// would have been done instead.
	DryRun bool

	// WarnWindow, when positive, collects files that will become
	// purge eligible within the window so operators get notice.
	WarnWindow time.Duration
}

// Purger plans and executes filesystem purges. All operations are
// serialized behind an internal lock; Execute holds the lock across
// planning and purging so the plan it executes is the plan it built.
type Purger struct {
	config *Config
	logger *slog.Logger

	mu   sync.Mutex
	plan *Plan
}

// NewPurger creates a purger with the given configuration.
func NewPurger(config *Config, logger *slog.Logger) *Purger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Purger{
		config: config,
		logger: logger.With("component", "sweep.purger"),
	}
}

// SetPolicyFile changes the policy file consulted by subsequent plans.
func (p *Purger) SetPolicyFile(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.config.PolicyFile
	p.config.PolicyFile = path
	p.logger.Debug("policy file reset", "old", old, "new", path)
}

// Plan reloads the policy, scans the policy trees, and stores the
// resulting plan, replacing any previous one.
func (p *Purger) Plan(ctx context.Context) (*Plan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.planLocked(ctx)
}

func (p *Purger) planLocked(ctx context.Context) (*Plan, error) {
	p.logger.Debug("reloading policy", "path", p.config.PolicyFile)
	pol, err := policy.Load(p.config.PolicyFile)
	if err != nil {
		return nil, err
	}

	// Invalidate any current plan before scanning.
	p.plan = nil

	scanner := NewScanner(pol, p.config.WarnWindow, p.logger)
	plan, err := scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	p.plan = plan
	return plan, nil
}

// Report returns the current plan without mutating storage.
func (p *Purger) Report() (*Plan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reportLocked()
}

func (p *Purger) reportLocked() (*Plan, error) {
	if p.plan == nil {
		return nil, ErrPlanNotReady
	}
	p.logger.Info("purge plan ready",
		"files", len(p.plan.Files),
		"bytes", p.plan.PurgeBytes(),
		"warnings", len(p.plan.Warnings),
		"scan_failures", len(p.plan.ScanFailures),
	)
	return p.plan, nil
}

// Purge executes the current plan: every planned file is removed, then
// directories left empty are removed deepest-first, sparing directories
// named directly in the policy. In dry-run mode nothing is mutated and
// the result carries the would-be counts.
//
// Per-entry failures are collected in the result and never abort the
// sweep. A successful purge consumes the plan.
func (p *Purger) Purge(ctx context.Context) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.purgeLocked(ctx)
}

func (p *Purger) purgeLocked(ctx context.Context) (*Result, error) {
	if p.plan == nil {
		return nil, ErrPlanNotReady
	}

	result := &Result{
		DryRun:       p.config.DryRun,
		StartedAt:    time.Now(),
		FilesPlanned: len(p.plan.Files),
		Warned:       len(p.plan.Warnings),
		ScanFailures: len(p.plan.ScanFailures),
	}

	if p.config.DryRun {
		p.logger.Warn("dry run enabled: reporting instead of purging",
			"files", len(p.plan.Files),
			"bytes", p.plan.PurgeBytes(),
		)
		result.BytesReclaimed = p.plan.PurgeBytes()
		result.FinishedAt = time.Now()
		return result, nil
	}

	victimDirs := make(map[string]struct{})
	for _, f := range p.plan.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.logger.Debug("removing file", "path", f.Path)
		switch err := os.Remove(f.Path); {
		case err == nil:
			result.FilesPurged++
			result.BytesReclaimed += f.Size
			victimDirs[filepath.Dir(f.Path)] = struct{}{}
		case errors.Is(err, fs.ErrNotExist):
			// Already gone; purging is idempotent.
			result.FilesMissing++
		default:
			p.logger.Error("failed to remove file", "path", f.Path, "error", err)
			result.Failures = append(result.Failures, EntryFailure{
				Path:  f.Path,
				Op:    "unlink",
				Error: err.Error(),
			})
		}
	}

	p.logger.Debug("file purge complete, removing empty directories")
	result.DirsRemoved = p.removeEmptyDirs(victimDirs, result)

	result.FinishedAt = time.Now()
	p.logger.Info("purge complete",
		"files_purged", result.FilesPurged,
		"bytes_reclaimed", result.BytesReclaimed,
		"dirs_removed", result.DirsRemoved,
		"failures", len(result.Failures),
	)

	// The plan has been acted on and is no longer valid.
	p.plan = nil
	return result, nil
}

// removeEmptyDirs removes, deepest-first, any directory that held a
// purged file and is now empty. A removed directory may leave its
// parent empty, so parents re-enter the candidate set. Directories
// named directly in the policy are never removed.
func (p *Purger) removeEmptyDirs(victimDirs map[string]struct{}, result *Result) int {
	pending := make(map[string]struct{}, len(victimDirs))
	for d := range victimDirs {
		pending[d] = struct{}{}
	}

	removed := 0
	for len(pending) > 0 {
		dirs := make([]string, 0, len(pending))
		for d := range pending {
			dirs = append(dirs, d)
		}
		sort.Slice(dirs, func(i, j int) bool {
			return len(dirs[i]) > len(dirs[j])
		})
		pending = make(map[string]struct{})

		for _, dir := range dirs {
			if p.plan.named(dir) {
				p.logger.Debug("keeping directory named in policy", "path", dir)
				continue
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				result.Failures = append(result.Failures, EntryFailure{
					Path:  dir,
					Op:    "readdir",
					Error: err.Error(),
				})
				continue
			}
			if len(entries) != 0 {
				continue
			}
			p.logger.Debug("removing empty directory", "path", dir)
			if err := os.Remove(dir); err != nil {
				result.Failures = append(result.Failures, EntryFailure{
					Path:  dir,
					Op:    "rmdir",
					Error: err.Error(),
				})
				continue
			}
			removed++
			pending[filepath.Dir(dir)] = struct{}{}
		}
	}
	return removed
}

// Execute builds a plan, reports it, and immediately purges, all under
// a single lock. This is the usual entry point for scheduled sweeps.
func (p *Purger) Execute(ctx context.Context) (*Plan, *Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	plan, err := p.planLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.reportLocked(); err != nil {
		return plan, nil, err
	}
	result, err := p.purgeLocked(ctx)
	if err != nil {
		return plan, nil, err
	}
	return plan, result, nil
}
