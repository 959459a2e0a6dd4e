package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"helios-ops/sweeper/pkg/policy"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "SWEEPER_"

// Load loads configuration from a YAML file, applies defaults, and
// validates the result. Environment variables are not consulted; use
// LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// SWEEPER_* environment variable overrides, which take precedence over
// the file.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads configuration from the default config file. A
// missing default file is not an error: the configuration then comes
// entirely from defaults and the environment, which is how container
// deployments usually run.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return LoadWithEnvOverrides(DefaultConfigFile)
	}

	cfg := &Config{}
	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies SWEEPER_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(EnvPrefix + "POLICY_FILE"); val != "" {
		cfg.PolicyFile = val
	}
	if val := os.Getenv(EnvPrefix + "DRY_RUN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.DryRun = b
		}
	}
	if val := os.Getenv(EnvPrefix + "WARN_WINDOW"); val != "" {
		if d, err := policy.ParseDuration(val); err == nil {
			cfg.WarnWindow = d
		}
	}
	if val := os.Getenv(EnvPrefix + "SCHEDULE"); val != "" {
		cfg.Schedule = val
	}
	if val := os.Getenv(EnvPrefix + "WATCH_POLICY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.WatchPolicy = b
		}
	}

	// Logging overrides
	if val := os.Getenv(EnvPrefix + "LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv(EnvPrefix + "LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	// History overrides
	if val := os.Getenv(EnvPrefix + "HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
	if val := os.Getenv(EnvPrefix + "HISTORY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.RetentionDays = i
		}
	}

	// Metrics overrides
	if val := os.Getenv(EnvPrefix + "METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}

	// The alert hook is a secret and arrives only via the
	// environment, typically injected from a Kubernetes secret.
	if val := os.Getenv(EnvPrefix + "ALERT_HOOK"); val != "" {
		cfg.Alert.WebhookURL = val
	}
}
