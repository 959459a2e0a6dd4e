package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	return path
}

// TestLoad tests loading a complete policy document.
func TestLoad(t *testing.T) {
	path := writePolicyFile(t, `
directories:
  - path: /scratch
    threshold: 1MiB
    intervals:
      large:
        accessInterval: 1d
        modificationInterval: 1d
      small:
        accessInterval: 1w
        modificationInterval: 1w
    exclude:
      - ".keep"
      - "protected/**"
  - path: /scratch/special
    threshold: 10MiB
    intervals:
      large:
        accessInterval: 8h
      small:
        accessInterval: 4w2d
`)

	pol, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(pol.Directories) != 2 {
		t.Fatalf("Expected 2 directories, got %d", len(pol.Directories))
	}

	d := &pol.Directories[0]
	if d.Path != "/scratch" {
		t.Errorf("Expected path /scratch, got %s", d.Path)
	}
	if d.Threshold != 1<<20 {
		t.Errorf("Expected threshold %d, got %d", 1<<20, d.Threshold)
	}
	if d.Intervals.Large.Access.Std() != 24*time.Hour {
		t.Errorf("Expected large access interval 24h, got %v", d.Intervals.Large.Access.Std())
	}
	if d.Intervals.Small.Modification.Std() != 7*24*time.Hour {
		t.Errorf("Expected small modification interval 168h, got %v", d.Intervals.Small.Modification.Std())
	}
	if d.Intervals.Large.Creation != 0 {
		t.Errorf("Expected absent creation interval to be zero, got %v", d.Intervals.Large.Creation)
	}

	special := &pol.Directories[1]
	if special.Intervals.Small.Access.Std() != 30*24*time.Hour {
		t.Errorf("Expected small access interval 720h, got %v", special.Intervals.Small.Access.Std())
	}
}

// TestLoad_Invalid tests structural validation of policy documents.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", `directories: []`},
		{"relative path", `
directories:
  - path: scratch
    threshold: 1MiB
`},
		{"duplicate path", `
directories:
  - path: /scratch
    threshold: 1MiB
  - path: /scratch
    threshold: 2MiB
`},
		{"bad exclude pattern", `
directories:
  - path: /scratch
    threshold: 1MiB
    exclude: ["[unclosed"]
`},
		{"bad threshold", `
directories:
  - path: /scratch
    threshold: lots
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePolicyFile(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

// TestLoad_MissingFile tests that a missing policy file is an error.
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/policy.yaml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

// TestDirectory_IntervalsFor tests size class selection. A file of
// exactly the threshold size counts as large.
func TestDirectory_IntervalsFor(t *testing.T) {
	d := Directory{
		Path:      "/scratch",
		Threshold: 1024,
		Intervals: SizedIntervals{
			Large: Intervals{Access: Duration(time.Hour)},
			Small: Intervals{Access: Duration(24 * time.Hour)},
		},
	}

	ivals, large := d.IntervalsFor(1024)
	if !large {
		t.Error("Expected file of exactly threshold size to be large")
	}
	if ivals.Access.Std() != time.Hour {
		t.Errorf("Expected large interval, got %v", ivals.Access.Std())
	}

	ivals, large = d.IntervalsFor(1023)
	if large {
		t.Error("Expected file below threshold to be small")
	}
	if ivals.Access.Std() != 24*time.Hour {
		t.Errorf("Expected small interval, got %v", ivals.Access.Std())
	}
}

// TestDirectory_Excluded tests exclusion matching against base names
// and root-relative paths.
func TestDirectory_Excluded(t *testing.T) {
	d := Directory{
		Path:    "/scratch",
		Exclude: []string{".keep", "*.lock", "protected/**"},
	}
	if err := d.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/scratch/.keep", true},
		{"/scratch/deep/nested/.keep", true},
		{"/scratch/job.lock", true},
		{"/scratch/protected/data.bin", true},
		{"/scratch/protected/sub/data.bin", true},
		{"/scratch/data.bin", false},
		{"/scratch/unprotected/data.bin", false},
		{"/elsewhere/.keep", false},
	}
	for _, tt := range tests {
		if got := d.Excluded(tt.path); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// TestPolicy_Roots tests that roots come back shortest first.
func TestPolicy_Roots(t *testing.T) {
	p := Policy{Directories: []Directory{
		{Path: "/scratch/a/deep/tree"},
		{Path: "/scratch"},
		{Path: "/scratch/a"},
	}}
	roots := p.Roots()
	want := []string{"/scratch", "/scratch/a", "/scratch/a/deep/tree"}
	if len(roots) != len(want) {
		t.Fatalf("Expected %d roots, got %d", len(want), len(roots))
	}
	for i := range want {
		if roots[i] != want[i] {
			t.Errorf("roots[%d] = %s, want %s", i, roots[i], want[i])
		}
	}
}

// TestPolicy_Named tests policy-root membership.
func TestPolicy_Named(t *testing.T) {
	p := Policy{Directories: []Directory{{Path: "/scratch"}}}
	if !p.Named("/scratch") {
		t.Error("Expected /scratch to be named")
	}
	if p.Named("/scratch/sub") {
		t.Error("Expected /scratch/sub not to be named")
	}
}

// TestIntervals_Zero tests the all-grounds-disabled predicate.
func TestIntervals_Zero(t *testing.T) {
	if !(Intervals{}).Zero() {
		t.Error("Expected empty intervals to be zero")
	}
	if (Intervals{Access: Duration(time.Second)}).Zero() {
		t.Error("Expected configured intervals not to be zero")
	}
}
