package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"helios-ops/sweeper/pkg/cli"
	"helios-ops/sweeper/pkg/config"
	"helios-ops/sweeper/pkg/sweep"
	"helios-ops/sweeper/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile    string
	policyFile string
	debug      bool
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Helios Sweeper - policy-driven scratch storage retention sweeper",
	Long: `Helios Sweeper periodically purges scratch storage.

It loads a YAML retention policy, scans the policy-governed directory
trees, classifies every file against per-class age intervals, and either
reports the resulting purge plan or executes it, removing eligible files
and any directories the purge left empty.

Typical use:
  # See what a sweep would remove
  sweeper report

  # Plan, report, and purge in one shot
  sweeper execute

  # Run as a daemon, sweeping on a cron schedule
  sweeper run`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Exit codes: 0 for a clean run, 1 for
// configuration or operational errors, 2 for a sweep that completed
// with per-entry failures.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var partial *cli.PartialFailureError
		if errors.As(err, &partial) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "application configuration file")
	rootCmd.PersistentFlags().StringVarP(&policyFile, "policy", "p", "", "purge policy file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "x", false, "do not act, but report what would be done")
}

// loadRuntime resolves configuration from file, environment, and
// flags, then installs the logger. Flags win over the environment,
// which wins over the file.
func loadRuntime() (*config.Config, *slog.Logger, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "CONFIG_FILE")
	}

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadWithEnvOverrides(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, nil, err
	}

	if policyFile != "" {
		cfg.PolicyFile = policyFile
	}
	if dryRun {
		cfg.DryRun = true
	}
	if !debug {
		if b, err := strconv.ParseBool(os.Getenv(config.EnvPrefix + "DEBUG")); err == nil {
			debug = b
		}
	}
	if debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "console"
	}

	logger, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, nil, cli.NewConfigError("logging", err.Error())
	}
	return cfg, logger, nil
}

// newPurger builds a purger from resolved configuration.
func newPurger(cfg *config.Config, logger *slog.Logger) *sweep.Purger {
	return sweep.NewPurger(&sweep.Config{
		PolicyFile: cfg.PolicyFile,
		DryRun:     cfg.DryRun,
		WarnWindow: cfg.WarnWindow.Std(),
	}, logger)
}
