package main

import (
	"os"

	"github.com/spf13/cobra"

	"helios-ops/sweeper/pkg/cli"
	"helios-ops/sweeper/pkg/sweep"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge files eligible under the retention policy",
	Long: `Build a purge plan and execute it.

Eligible files are removed, then directories the purge left empty are
removed deepest-first; directories named directly in the policy are
never removed. With --dry-run (or dry_run in the config) nothing is
mutated and the would-be outcome is reported instead.

Per-entry removal failures do not abort the sweep; they are reported
and the command exits with status 2 so schedulers can distinguish a
degraded sweep from a clean one.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	purger := newPurger(cfg, logger)
	ctx := cli.SetupSignalHandler()

	if _, err := purger.Plan(ctx); err != nil {
		return cli.NewCommandError("purge", err)
	}
	result, err := purger.Purge(ctx)
	observeRun(ctx, cfg, logger, "purge", result, err)
	if err != nil {
		return cli.NewCommandError("purge", err)
	}

	if err := sweep.RenderResultText(os.Stdout, result); err != nil {
		return err
	}
	if result.Failed() {
		return &cli.PartialFailureError{Failures: len(result.Failures)}
	}
	return nil
}
