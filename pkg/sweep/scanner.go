package sweep

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"helios-ops/sweeper/pkg/policy"
)

// Scanner walks the policy-governed trees and assembles a purge plan.
type Scanner struct {
	policy     *policy.Policy
	warnWindow time.Duration
	logger     *slog.Logger
}

// NewScanner creates a scanner for the given policy. A positive
// warnWindow additionally collects files that will become purge
// eligible within that window.
func NewScanner(pol *policy.Policy, warnWindow time.Duration, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		policy:     pol,
		warnWindow: warnWindow,
		logger:     logger.With("component", "sweep.scanner"),
	}
}

// Scan walks every policy tree, most specific first, and returns the
// resulting plan. Entries that cannot be examined are recorded as scan
// failures and do not abort the walk. The scan time is fixed once at
// the start so every age comparison uses the same instant.
func (s *Scanner) Scan(ctx context.Context) (*Plan, error) {
	now := time.Now()
	plan := &Plan{
		CreatedAt: now,
		NamedDirs: s.policy.Roots(),
	}

	// Roots come back shortest first; pop from the end so the most
	// specific policy claims its subtree before any ancestor walks it.
	roots := s.policy.Roots()
	var visited []string

	for len(roots) > 0 {
		root := roots[len(roots)-1]
		roots = roots[:len(roots)-1]

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir, err := s.policy.DirectoryFor(root)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("considering policy tree", "path", root)
		s.walkTree(ctx, root, dir, visited, now, plan)
		visited = append(visited, root)
	}

	s.logger.Debug("scan complete",
		"planned_files", len(plan.Files),
		"warnings", len(plan.Warnings),
		"scan_failures", len(plan.ScanFailures),
	)
	return plan, nil
}

// walkTree scans a single policy tree, skipping subtrees already
// claimed by a more specific policy and subtrees excluded by pattern.
func (s *Scanner) walkTree(ctx context.Context, root string, dir *policy.Directory, visited []string, now time.Time, plan *Plan) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			plan.ScanFailures = append(plan.ScanFailures, ScanFailure{Path: path, Error: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if coveredBy(path, visited) {
				s.logger.Debug("subtree already claimed by more specific policy", "path", path)
				return filepath.SkipDir
			}
			if dir.Excluded(path) {
				s.logger.Debug("subtree excluded by policy pattern", "path", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if dir.Excluded(path) {
			s.logger.Debug("file excluded by policy pattern", "path", path)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			plan.ScanFailures = append(plan.ScanFailures, ScanFailure{Path: path, Error: err.Error()})
			return nil
		}

		record, warn := s.evaluate(path, info, dir, now)
		if record != nil {
			s.logger.Debug("file selected for purge",
				"path", path,
				"class", record.Class,
				"reason", record.Reason,
			)
			plan.Files = append(plan.Files, *record)
		} else if warn != nil {
			plan.Warnings = append(plan.Warnings, *warn)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		plan.ScanFailures = append(plan.ScanFailures, ScanFailure{Path: root, Error: err.Error()})
	}
}

// evaluate classifies a single file against its governing policy.
// Grounds are checked in access, creation, modification order and the
// first expired ground wins. If no ground has expired but one would
// expire within the warn window, a warn record is returned instead.
func (s *Scanner) evaluate(path string, info fs.FileInfo, dir *policy.Directory, now time.Time) (*FileRecord, *WarnRecord) {
	size := info.Size()
	ivals, large := dir.IntervalsFor(size)
	class := ClassSmall
	if large {
		class = ClassLarge
	}

	atime, ctime, mtime := fileTimes(info)
	grounds := []struct {
		reason    FileReason
		when      time.Time
		criterion time.Duration
	}{
		{ReasonAccess, atime, ivals.Access.Std()},
		{ReasonCreation, ctime, ivals.Creation.Std()},
		{ReasonModification, mtime, ivals.Modification.Std()},
	}

	for _, g := range grounds {
		if g.criterion <= 0 {
			continue
		}
		age := now.Sub(g.when)
		if age > g.criterion {
			return &FileRecord{
				Path:      path,
				Size:      size,
				Class:     class,
				Reason:    g.reason,
				Age:       age,
				Criterion: g.criterion,
			}, nil
		}
	}

	if s.warnWindow > 0 {
		for _, g := range grounds {
			if g.criterion <= 0 {
				continue
			}
			age := now.Sub(g.when)
			if age+s.warnWindow > g.criterion {
				return nil, &WarnRecord{
					Path:       path,
					Size:       size,
					Class:      class,
					Reason:     g.reason,
					EligibleIn: g.criterion - age,
				}
			}
		}
	}
	return nil, nil
}

// coveredBy reports whether path equals, or lies under, any of the
// already-visited policy roots.
func coveredBy(path string, visited []string) bool {
	for _, v := range visited {
		if path == v || strings.HasPrefix(path, v+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
