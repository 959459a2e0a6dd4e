// Package metrics exposes Prometheus metrics for sweep runs: run
// counts by outcome, files purged, bytes reclaimed, per-entry
// failures, run durations, and last/next run timestamps. The daemon
// mounts Handler at /metrics.
package metrics
