// Package telemetry groups the sweeper's observability concerns.
//
// Subpackages:
//
//   - logging: structured slog configuration (JSON in production,
//     console for interactive use)
//   - metrics: Prometheus metrics for sweep runs, served at /metrics
//     in daemon mode
//   - health: liveness and readiness probes for the daemon
//
// One-shot commands use logging only; the run daemon wires all three.
package telemetry
