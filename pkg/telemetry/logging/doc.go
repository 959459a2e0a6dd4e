// Package logging configures the process-wide structured logger.
// Components obtain loggers via slog.Default().With("component", ...).
// Production deployments log JSON; the console format drops timestamps
// for interactive use.
package logging
