package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"helios-ops/sweeper/pkg/sweep"
)

func testResult() *sweep.Result {
	now := time.Now()
	return &sweep.Result{
		StartedAt:      now.Add(-2 * time.Second),
		FinishedAt:     now,
		FilesPlanned:   5,
		FilesPurged:    4,
		BytesReclaimed: 4096,
	}
}

// TestSweepMetrics_ObserveRun tests counters for a clean run.
func TestSweepMetrics_ObserveRun(t *testing.T) {
	m := NewSweepMetrics("sweeper", nil)
	m.ObserveRun(testResult(), nil)

	if got := testutil.ToFloat64(m.runsTotal.WithLabelValues("clean")); got != 1 {
		t.Errorf("Expected 1 clean run, got %v", got)
	}
	if got := testutil.ToFloat64(m.filesPurgedTotal); got != 4 {
		t.Errorf("Expected 4 files purged, got %v", got)
	}
	if got := testutil.ToFloat64(m.bytesReclaimedTotal); got != 4096 {
		t.Errorf("Expected 4096 bytes reclaimed, got %v", got)
	}
	if got := testutil.ToFloat64(m.lastRunPlanned); got != 5 {
		t.Errorf("Expected 5 planned files, got %v", got)
	}
}

// TestSweepMetrics_Outcomes tests outcome labeling for partial and
// failed runs.
func TestSweepMetrics_Outcomes(t *testing.T) {
	m := NewSweepMetrics("sweeper", nil)

	partial := testResult()
	partial.Failures = []sweep.EntryFailure{{Path: "/scratch/x", Op: "unlink", Error: "busy"}}
	m.ObserveRun(partial, nil)
	if got := testutil.ToFloat64(m.runsTotal.WithLabelValues("partial")); got != 1 {
		t.Errorf("Expected 1 partial run, got %v", got)
	}
	if got := testutil.ToFloat64(m.entryFailuresTotal); got != 1 {
		t.Errorf("Expected 1 entry failure, got %v", got)
	}

	m.ObserveRun(nil, errors.New("policy missing"))
	if got := testutil.ToFloat64(m.runsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("Expected 1 error run, got %v", got)
	}
}

// TestSweepMetrics_SetNextRun tests the next-run gauge including the
// no-schedule case.
func TestSweepMetrics_SetNextRun(t *testing.T) {
	m := NewSweepMetrics("sweeper", nil)

	next := time.Now().Add(time.Hour)
	m.SetNextRun(&next)
	if got := testutil.ToFloat64(m.nextRunTimestamp); got != float64(next.Unix()) {
		t.Errorf("Expected next run %v, got %v", next.Unix(), got)
	}

	m.SetNextRun(nil)
	if got := testutil.ToFloat64(m.nextRunTimestamp); got != 0 {
		t.Errorf("Expected 0 with no schedule, got %v", got)
	}
}

// TestSweepMetrics_Handler tests that the HTTP handler exposes the
// namespaced metrics.
func TestSweepMetrics_Handler(t *testing.T) {
	m := NewSweepMetrics("sweeper", nil)
	m.ObserveRun(testResult(), nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"sweeper_runs_total",
		"sweeper_files_purged_total",
		"sweeper_bytes_reclaimed_total",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metric %s in output", want)
		}
	}
}
