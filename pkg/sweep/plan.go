package sweep

import (
	"time"
)

// FileClass is the size class of a file, relative to the governing
// policy threshold.
type FileClass string

const (
	// ClassLarge marks files at or above the policy threshold.
	ClassLarge FileClass = "LARGE"
	// ClassSmall marks files below the policy threshold.
	ClassSmall FileClass = "SMALL"
)

// FileReason is the ground on which a file was selected for purging.
type FileReason string

const (
	// ReasonAccess selects on time since last access.
	ReasonAccess FileReason = "ATIME"
	// ReasonCreation selects on time since inode change (creation).
	ReasonCreation FileReason = "CTIME"
	// ReasonModification selects on time since last modification.
	ReasonModification FileReason = "MTIME"
)

// FileRecord is a file to be purged, and why.
type FileRecord struct {
	Path      string        `json:"path"`
	Size      int64         `json:"size"`
	Class     FileClass     `json:"class"`
	Reason    FileReason    `json:"reason"`
	Age       time.Duration `json:"age"`
	Criterion time.Duration `json:"criterion"`
}

// WarnRecord is a file that is not yet purge eligible but will become
// so within the warn window unless it is touched again.
type WarnRecord struct {
	Path       string        `json:"path"`
	Size       int64         `json:"size"`
	Class      FileClass     `json:"class"`
	Reason     FileReason    `json:"reason"`
	EligibleIn time.Duration `json:"eligible_in"`
}

// ScanFailure records an entry that could not be examined. Scan
// failures do not abort the sweep.
type ScanFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Plan is the outcome of scanning and evaluating the policy trees. It
// is immutable once built and is invalidated by a purge.
type Plan struct {
	// CreatedAt is the single timestamp all age comparisons used.
	CreatedAt time.Time `json:"created_at"`

	// Files are the entries selected for purging.
	Files []FileRecord `json:"files"`

	// Warnings are entries approaching purge eligibility.
	Warnings []WarnRecord `json:"warnings,omitempty"`

	// ScanFailures are entries that could not be examined.
	ScanFailures []ScanFailure `json:"scan_failures,omitempty"`

	// NamedDirs are the directories named directly in the policy.
	// Empty-directory cleanup never removes them.
	NamedDirs []string `json:"named_dirs"`
}

// PurgeBytes returns the total size of all files selected for purging.
func (p *Plan) PurgeBytes() int64 {
	var total int64
	for _, f := range p.Files {
		total += f.Size
	}
	return total
}

// Empty reports whether the plan selects nothing for purging.
func (p *Plan) Empty() bool {
	return len(p.Files) == 0
}

// named reports whether dir is one of the policy-named directories.
func (p *Plan) named(dir string) bool {
	for _, d := range p.NamedDirs {
		if d == dir {
			return true
		}
	}
	return false
}
