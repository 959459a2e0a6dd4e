package config

import (
	"helios-ops/sweeper/pkg/policy"
)

// Config is the top-level application configuration for the sweeper.
// It is loaded from YAML, overridden by SWEEPER_* environment
// variables, and finally by command-line flags.
type Config struct {
	// PolicyFile is the location of the purge policy document.
	PolicyFile string `yaml:"policy_file"`

	// DryRun reports what would be purged instead of purging.
	DryRun bool `yaml:"dry_run"`

	// WarnWindow, when positive, reports files that will become
	// purge eligible within the window.
	WarnWindow policy.Duration `yaml:"warn_window"`

	// Schedule is a cron expression for periodic sweeps in daemon
	// mode. Empty disables scheduling.
	Schedule string `yaml:"schedule"`

	// WatchPolicy reloads the policy file on change in daemon mode.
	WatchPolicy bool `yaml:"watch_policy"`

	Logging LoggingConfig `yaml:"logging"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Alert   AlertConfig   `yaml:"alert"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `yaml:"level"`

	// Format is the log output format: json, text, or console.
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// HistoryConfig configures the sweep run journal.
type HistoryConfig struct {
	// Enabled turns journaling on.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file for the journal.
	Path string `yaml:"path"`

	// RetentionDays is how long journal rows are kept.
	RetentionDays int `yaml:"retention_days"`
}

// MetricsConfig configures the Prometheus endpoint served in daemon
// mode.
type MetricsConfig struct {
	// Enabled turns the metrics endpoint on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the host:port the endpoint listens on.
	ListenAddress string `yaml:"listen_address"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`
}

// AlertConfig configures webhook notifications for sweep outcomes.
// The webhook URL is secret-ish and is normally injected through the
// SWEEPER_ALERT_HOOK environment variable rather than written into the
// config file.
type AlertConfig struct {
	// WebhookURL receives a Slack-compatible JSON payload after each
	// sweep. Empty disables alerting.
	WebhookURL string `yaml:"webhook_url"`

	// Timeout bounds each webhook delivery.
	Timeout policy.Duration `yaml:"timeout"`
}
