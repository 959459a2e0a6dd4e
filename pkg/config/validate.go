package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"

	"helios-ops/sweeper/pkg/telemetry/logging"
)

// FieldError is a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path of the field (e.g. "logging.level").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects all field errors found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the configuration and returns a ValidationError
// listing every problem found, or nil if the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.PolicyFile == "" {
		errs = append(errs, FieldError{"policy_file", "must not be empty"})
	}
	if cfg.WarnWindow < 0 {
		errs = append(errs, FieldError{"warn_window", "must not be negative"})
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{"schedule", fmt.Sprintf("invalid cron expression: %v", err)})
		}
	}

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, FieldError{"logging.level", err.Error()})
	}
	if _, err := logging.ParseFormat(cfg.Logging.Format); err != nil {
		errs = append(errs, FieldError{"logging.format", err.Error()})
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		errs = append(errs, FieldError{"history.path", "must not be empty when history is enabled"})
	}
	if cfg.History.RetentionDays < 0 {
		errs = append(errs, FieldError{"history.retention_days", "must not be negative"})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{"metrics.listen_address", "must not be empty when metrics are enabled"})
	}

	if cfg.Alert.WebhookURL != "" {
		u, err := url.Parse(cfg.Alert.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, FieldError{"alert.webhook_url", "must be a valid http(s) URL"})
		}
	}
	if cfg.Alert.Timeout < 0 {
		errs = append(errs, FieldError{"alert.timeout", "must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
