package policy

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Intervals describe how long it must have been since a file was
// accessed, created, or modified before the file is considered for
// purging. A zero interval disables the corresponding ground.
type Intervals struct {
	Access       Duration `yaml:"accessInterval"`
	Creation     Duration `yaml:"creationInterval"`
	Modification Duration `yaml:"modificationInterval"`
}

// Zero reports whether no ground is configured at all.
func (iv Intervals) Zero() bool {
	return iv.Access == 0 && iv.Creation == 0 && iv.Modification == 0
}

// SizedIntervals holds separate intervals for large and small files.
type SizedIntervals struct {
	Large Intervals `yaml:"large"`
	Small Intervals `yaml:"small"`
}

// Directory is the policy for one directory tree.
type Directory struct {
	// Path is the root of the tree this policy covers.
	Path string `yaml:"path"`

	// Threshold is the size in bytes demarcating large from small
	// files. A file of exactly Threshold bytes counts as large.
	Threshold ByteSize `yaml:"threshold"`

	// Intervals are the purge criteria for each size class.
	Intervals SizedIntervals `yaml:"intervals"`

	// Exclude lists glob patterns for entries the sweep must never
	// touch, matched against the entry base name and its path
	// relative to Path.
	Exclude []string `yaml:"exclude"`

	// compiled exclusion matchers, populated by Compile.
	excludes []glob.Glob
}

// Compile compiles the exclusion patterns. It must be called before
// Excluded; Load does this for every directory.
func (d *Directory) Compile() error {
	d.excludes = d.excludes[:0]
	for _, pattern := range d.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q for %q: %w", pattern, d.Path, err)
		}
		d.excludes = append(d.excludes, g)
	}
	return nil
}

// Excluded reports whether path is protected from purging by one of this
// directory's exclude patterns. Path may be absolute or relative to the
// policy root.
func (d *Directory) Excluded(path string) bool {
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(d.Path, path)
		if err != nil || strings.HasPrefix(r, "..") {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, g := range d.excludes {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// IntervalsFor returns the interval set governing a file of the given
// size, along with the class name ("large" or "small").
func (d *Directory) IntervalsFor(size int64) (Intervals, bool) {
	large := size >= int64(d.Threshold)
	if large {
		return d.Intervals.Large, true
	}
	return d.Intervals.Small, false
}

// Policy is a purge policy spanning multiple directory trees.
type Policy struct {
	Directories []Directory `yaml:"directories"`
}

// Roots returns the policy directory paths sorted by path length,
// shortest first. Traversal pops from the end of this list so the most
// specific policies are considered first and shadow their ancestors.
func (p *Policy) Roots() []string {
	roots := make([]string, 0, len(p.Directories))
	for _, d := range p.Directories {
		roots = append(roots, d.Path)
	}
	sort.Slice(roots, func(i, j int) bool {
		return len(roots[i]) < len(roots[j])
	})
	return roots
}

// DirectoryFor returns the policy entry whose path is exactly root.
func (p *Policy) DirectoryFor(root string) (*Directory, error) {
	for i := range p.Directories {
		if p.Directories[i].Path == root {
			return &p.Directories[i], nil
		}
	}
	return nil, fmt.Errorf("no policy entry for %q", root)
}

// Named reports whether path is named directly as a policy directory.
// Such directories are never removed by empty-directory cleanup.
func (p *Policy) Named(path string) bool {
	for i := range p.Directories {
		if p.Directories[i].Path == path {
			return true
		}
	}
	return false
}

// Validate checks the policy for structural problems and compiles the
// exclusion patterns of every directory.
func (p *Policy) Validate() error {
	if len(p.Directories) == 0 {
		return fmt.Errorf("policy lists no directories")
	}
	seen := make(map[string]struct{}, len(p.Directories))
	for i := range p.Directories {
		d := &p.Directories[i]
		if d.Path == "" {
			return fmt.Errorf("policy directory %d has no path", i)
		}
		if !filepath.IsAbs(d.Path) {
			return fmt.Errorf("policy directory path %q is not absolute", d.Path)
		}
		if d.Threshold < 0 {
			return fmt.Errorf("policy directory %q has negative threshold", d.Path)
		}
		clean := filepath.Clean(d.Path)
		if _, dup := seen[clean]; dup {
			return fmt.Errorf("policy directory %q listed more than once", d.Path)
		}
		seen[clean] = struct{}{}
		if err := d.Compile(); err != nil {
			return err
		}
	}
	return nil
}
