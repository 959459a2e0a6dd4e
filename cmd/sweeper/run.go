package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"helios-ops/sweeper/pkg/alert"
	"helios-ops/sweeper/pkg/cli"
	"helios-ops/sweeper/pkg/history"
	"helios-ops/sweeper/pkg/policy"
	"helios-ops/sweeper/pkg/sweep"
	"helios-ops/sweeper/pkg/telemetry/health"
	"helios-ops/sweeper/pkg/telemetry/metrics"
)

var runFlags struct {
	schedule  string
	immediate bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run as a daemon, sweeping on a cron schedule",
	Long: `Run the sweeper as a long-lived daemon.

Sweeps execute on the configured cron schedule. When enabled, the
daemon also serves Prometheus metrics, journals every run in the
history store, reloads the policy file on change, and posts sweep
outcomes to the alert webhook.

Examples:
  # Sweep nightly at 3 AM
  sweeper run --schedule "0 3 * * *"

  # Sweep every 6 hours and once immediately at startup
  sweeper run --schedule "0 */6 * * *" --immediate`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runFlags.schedule, "schedule", "", "override cron schedule")
	runCmd.Flags().BoolVar(&runFlags.immediate, "immediate", false, "run a sweep immediately on startup")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	if runFlags.schedule != "" {
		cfg.Schedule = runFlags.schedule
	}
	if cfg.Schedule == "" {
		return cli.NewConfigError("schedule", "daemon mode requires a cron schedule")
	}

	// Surface policy problems at startup instead of at 3 AM.
	if _, err := policy.Load(cfg.PolicyFile); err != nil {
		return cli.NewConfigError("policy_file", err.Error())
	}

	purger := newPurger(cfg, logger)
	ctx, cancel := context.WithCancel(cli.SetupSignalHandler())
	defer cancel()

	// History store stays open for the daemon's lifetime.
	var store history.Store
	if cfg.History.Enabled {
		store, err = history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer store.Close()
	}

	var sweepMetrics *metrics.SweepMetrics
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		checker := health.New(0)
		checker.RegisterCheck("policy", func(ctx context.Context) error {
			_, err := policy.Load(cfg.PolicyFile)
			return err
		})
		if store != nil {
			checker.RegisterCheck("history", func(ctx context.Context) error {
				_, err := store.List(ctx, 1)
				return err
			})
		}

		sweepMetrics = metrics.NewSweepMetrics(cfg.Metrics.Namespace, nil)
		mux := http.NewServeMux()
		mux.Handle("/metrics", sweepMetrics.Handler())
		mux.HandleFunc("/healthz", checker.LivenessHandler())
		mux.HandleFunc("/readyz", checker.ReadinessHandler())
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("metrics endpoint listening", "address", cfg.Metrics.ListenAddress)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	var notifier *alert.Notifier
	if cfg.Alert.WebhookURL != "" {
		notifier = alert.NewNotifier(cfg.Alert.WebhookURL, cfg.Alert.Timeout.Std(), logger)
	}

	var scheduler *sweep.Scheduler
	observer := func(plan *sweep.Plan, result *sweep.Result, runErr error) {
		if sweepMetrics != nil {
			sweepMetrics.ObserveRun(result, runErr)
			if scheduler != nil {
				sweepMetrics.SetNextRun(scheduler.NextRun())
			}
		}
		if store != nil {
			recordRun(ctx, store, cfg, logger, "execute", result, runErr)
		}
		if notifier != nil {
			heading, text := "Sweep report", ""
			if runErr != nil {
				heading, text = "Sweep failed", runErr.Error()
			} else if result != nil {
				text = result.Summary()
			}
			if text != "" {
				if err := notifier.Notify(ctx, heading, text); err != nil {
					logger.Error("failed to deliver sweep alert", "error", err)
				}
			}
		}
	}

	scheduler = sweep.NewScheduler(purger, cfg.Schedule, observer, logger)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer scheduler.Stop()
	if next := scheduler.NextRun(); next != nil {
		logger.Info("daemon started", "schedule", cfg.Schedule, "next_sweep", next)
		if sweepMetrics != nil {
			sweepMetrics.SetNextRun(next)
		}
	}

	// Policy hot reload: plans re-read the policy anyway, so the
	// watcher's job is early validation and a clear log line.
	if cfg.WatchPolicy {
		watcher, err := policy.NewFileWatcher(cfg.PolicyFile, 0, logger)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go func() {
			err := watcher.Watch(ctx, func() error {
				if _, err := policy.Load(cfg.PolicyFile); err != nil {
					return err
				}
				logger.Info("policy validated, next sweep will use it", "path", cfg.PolicyFile)
				return nil
			})
			if err != nil {
				logger.Error("policy watcher exited", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	if runFlags.immediate {
		logger.Info("running startup sweep")
		plan, result, err := purger.Execute(ctx)
		observer(plan, result, err)
		if err != nil {
			logger.Error("startup sweep failed", "error", err)
		}
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}
	return nil
}
