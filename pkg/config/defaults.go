package config

import (
	"time"

	"helios-ops/sweeper/pkg/policy"
)

// Default values for configuration fields.
const (
	// DefaultConfigFile is consulted when no config flag or
	// environment override is given.
	DefaultConfigFile = "/etc/sweeper/config.yaml"

	DefaultPolicyFile = "/etc/sweeper/policy.yaml"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultHistoryPath          = "/var/lib/sweeper/history.db"
	DefaultHistoryRetentionDays = 90

	DefaultMetricsListenAddress = "127.0.0.1:9413"
	DefaultMetricsNamespace     = "sweeper"

	DefaultAlertTimeout = 10 * time.Second
)

// ApplyDefaults fills in default values for unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.PolicyFile == "" {
		cfg.PolicyFile = DefaultPolicyFile
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultHistoryRetentionDays
	}
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Alert.Timeout == 0 {
		cfg.Alert.Timeout = policy.Duration(DefaultAlertTimeout)
	}
}
