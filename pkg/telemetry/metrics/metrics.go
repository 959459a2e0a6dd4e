package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"helios-ops/sweeper/pkg/sweep"
)

// SweepMetrics tracks Prometheus metrics for sweep runs.
//
// Metrics:
//   - <ns>_runs_total: sweep run count by outcome (clean, partial, error)
//   - <ns>_files_purged_total: files removed across all runs
//   - <ns>_bytes_reclaimed_total: bytes reclaimed across all runs
//   - <ns>_entry_failures_total: per-entry removal failures
//   - <ns>_run_duration_seconds: sweep duration histogram
//   - <ns>_last_run_timestamp_seconds: when the last run finished
//   - <ns>_last_run_planned_files: plan size of the last run
//   - <ns>_next_run_timestamp_seconds: next scheduled run, if any
type SweepMetrics struct {
	registry *prometheus.Registry

	runsTotal           *prometheus.CounterVec
	filesPurgedTotal    prometheus.Counter
	bytesReclaimedTotal prometheus.Counter
	entryFailuresTotal  prometheus.Counter
	runDuration         prometheus.Histogram
	lastRunTimestamp    prometheus.Gauge
	lastRunPlanned      prometheus.Gauge
	nextRunTimestamp    prometheus.Gauge
}

// NewSweepMetrics creates and registers sweep metrics. If registry is
// nil a fresh registry is created.
func NewSweepMetrics(namespace string, registry *prometheus.Registry) *SweepMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "sweeper"
	}

	m := &SweepMetrics{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of sweep runs by outcome",
			},
			[]string{"outcome"},
		),
		filesPurgedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_purged_total",
				Help:      "Total number of files removed by sweeps",
			},
		),
		bytesReclaimedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bytes_reclaimed_total",
				Help:      "Total bytes reclaimed by sweeps",
			},
		),
		entryFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entry_failures_total",
				Help:      "Total per-entry removal failures",
			},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of sweep runs in seconds",
				// Sweeps range from sub-second on small trees to
				// minutes on large scratch volumes.
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900, 3600},
			},
		),
		lastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last sweep run finished",
			},
		),
		lastRunPlanned: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_planned_files",
				Help:      "Number of files the last sweep planned to purge",
			},
		),
		nextRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "next_run_timestamp_seconds",
				Help:      "Unix time of the next scheduled sweep, 0 if none",
			},
		),
	}

	registry.MustRegister(
		m.runsTotal,
		m.filesPurgedTotal,
		m.bytesReclaimedTotal,
		m.entryFailuresTotal,
		m.runDuration,
		m.lastRunTimestamp,
		m.lastRunPlanned,
		m.nextRunTimestamp,
	)
	return m
}

// ObserveRun records the outcome of one sweep run.
func (m *SweepMetrics) ObserveRun(result *sweep.Result, err error) {
	if err != nil {
		m.runsTotal.WithLabelValues("error").Inc()
		return
	}
	outcome := "clean"
	if result.Failed() {
		outcome = "partial"
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.filesPurgedTotal.Add(float64(result.FilesPurged))
	m.bytesReclaimedTotal.Add(float64(result.BytesReclaimed))
	m.entryFailuresTotal.Add(float64(len(result.Failures)))
	m.runDuration.Observe(result.Duration().Seconds())
	m.lastRunTimestamp.Set(float64(result.FinishedAt.Unix()))
	m.lastRunPlanned.Set(float64(result.FilesPlanned))
}

// SetNextRun publishes the next scheduled sweep time.
func (m *SweepMetrics) SetNextRun(next *time.Time) {
	if next == nil {
		m.nextRunTimestamp.Set(0)
		return
	}
	m.nextRunTimestamp.Set(float64(next.Unix()))
}

// Registry returns the underlying Prometheus registry.
func (m *SweepMetrics) Registry() *prometheus.Registry {
	return m.registry
}
