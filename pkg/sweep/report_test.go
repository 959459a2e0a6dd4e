package sweep

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// TestRenderText_EmptyPlan tests the nothing-to-do rendering.
func TestRenderText_EmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, &Plan{CreatedAt: time.Now()}); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to purge.") {
		t.Errorf("Expected nothing-to-purge message, got %q", buf.String())
	}
}

// TestRenderText_Plan tests that planned files, warnings, and scan
// failures all appear.
func TestRenderText_Plan(t *testing.T) {
	plan := &Plan{
		CreatedAt: time.Now(),
		Files: []FileRecord{{
			Path:      "/scratch/old.dat",
			Size:      2048,
			Class:     ClassLarge,
			Reason:    ReasonAccess,
			Age:       36 * time.Hour,
			Criterion: 24 * time.Hour,
		}},
		Warnings: []WarnRecord{{
			Path:       "/scratch/soon.dat",
			Size:       10,
			Class:      ClassSmall,
			Reason:     ReasonModification,
			EligibleIn: 90 * time.Minute,
		}},
		ScanFailures: []ScanFailure{{
			Path:  "/scratch/denied",
			Error: "permission denied",
		}},
	}

	var buf bytes.Buffer
	if err := RenderText(&buf, plan); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"/scratch/old.dat",
		"LARGE",
		"ATIME",
		"/scratch/soon.dat",
		"eligible in",
		"/scratch/denied",
		"permission denied",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

// TestRenderResultText tests result rendering for real and dry runs.
func TestRenderResultText(t *testing.T) {
	now := time.Now()
	result := &Result{
		StartedAt:      now,
		FinishedAt:     now.Add(2 * time.Second),
		FilesPlanned:   3,
		FilesPurged:    2,
		FilesMissing:   1,
		DirsRemoved:    1,
		BytesReclaimed: 4096,
	}

	var buf bytes.Buffer
	if err := RenderResultText(&buf, result); err != nil {
		t.Fatalf("RenderResultText failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Purged 2 of 3 files") {
		t.Errorf("Expected purge summary, got %q", out)
	}
	if !strings.Contains(out, "already gone") {
		t.Errorf("Expected missing-files note, got %q", out)
	}

	buf.Reset()
	dry := &Result{DryRun: true, FilesPlanned: 3, BytesReclaimed: 4096}
	if err := RenderResultText(&buf, dry); err != nil {
		t.Fatalf("RenderResultText failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Dry run") {
		t.Errorf("Expected dry-run marker, got %q", buf.String())
	}
}

// TestRenderJSON tests that plans render as well-formed JSON.
func TestRenderJSON(t *testing.T) {
	plan := &Plan{
		CreatedAt: time.Now(),
		Files:     []FileRecord{{Path: "/scratch/a", Size: 1, Class: ClassSmall, Reason: ReasonAccess}},
		NamedDirs: []string{"/scratch"},
	}

	var buf bytes.Buffer
	if err := RenderJSON(&buf, plan); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got error %v:\n%s", err, buf.String())
	}
	if _, ok := decoded["files"]; !ok {
		t.Error("Expected files key in JSON output")
	}
}

// TestResult_Summary tests the one-line summaries used in alerts.
func TestResult_Summary(t *testing.T) {
	r := &Result{FilesPlanned: 3, FilesPurged: 2, BytesReclaimed: 1 << 20}
	if got := r.Summary(); !strings.Contains(got, "purged 2 of 3 files") {
		t.Errorf("Unexpected summary %q", got)
	}

	dry := &Result{DryRun: true, FilesPlanned: 5, BytesReclaimed: 1024}
	if got := dry.Summary(); !strings.Contains(got, "dry run") {
		t.Errorf("Unexpected dry-run summary %q", got)
	}
}
