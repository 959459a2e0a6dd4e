package main

import (
	"context"
	"log/slog"
	"time"

	"helios-ops/sweeper/pkg/alert"
	"helios-ops/sweeper/pkg/config"
	"helios-ops/sweeper/pkg/history"
	"helios-ops/sweeper/pkg/sweep"
)

// observeRun journals a completed sweep and delivers the alert
// notification. Nothing here is allowed to fail the sweep itself:
// problems are logged and swallowed.
func observeRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, mode string, result *sweep.Result, runErr error) {
	if cfg.History.Enabled {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			logger.Error("failed to open history store", "error", err)
		} else {
			recordRun(ctx, store, cfg, logger, mode, result, runErr)
			if err := store.Close(); err != nil {
				logger.Error("failed to close history store", "error", err)
			}
		}
	}

	if cfg.Alert.WebhookURL == "" {
		return
	}
	notifier := alert.NewNotifier(cfg.Alert.WebhookURL, cfg.Alert.Timeout.Std(), logger)
	heading := "Sweep report"
	text := ""
	switch {
	case runErr != nil:
		heading = "Sweep failed"
		text = runErr.Error()
	case result != nil:
		text = result.Summary()
	default:
		return
	}
	if err := notifier.Notify(ctx, heading, text); err != nil {
		logger.Error("failed to deliver sweep alert", "error", err)
	}
}

// recordRun appends the run to an open journal and applies the
// journal's own retention.
func recordRun(ctx context.Context, store history.Store, cfg *config.Config, logger *slog.Logger, mode string, result *sweep.Result, runErr error) {
	rec := history.NewRecord(mode, result)
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if err := store.Record(ctx, rec); err != nil {
		logger.Error("failed to journal sweep run", "error", err)
		return
	}
	if cfg.History.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
		if _, err := store.Prune(ctx, cutoff); err != nil {
			logger.Error("failed to prune sweep history", "error", err)
		}
	}
}
