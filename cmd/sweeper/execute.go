package main

import (
	"os"

	"github.com/spf13/cobra"

	"helios-ops/sweeper/pkg/cli"
	"helios-ops/sweeper/pkg/sweep"
)

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Plan, report, and purge in one pass",
	Long: `Build a purge plan, print it, and immediately execute it under a
single lock. This is the usual entry point for cron-style one-shot
deployments.`,
	RunE: runExecute,
}

func init() {
	rootCmd.AddCommand(executeCmd)
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	purger := newPurger(cfg, logger)
	ctx := cli.SetupSignalHandler()

	plan, result, err := purger.Execute(ctx)
	observeRun(ctx, cfg, logger, "execute", result, err)
	if err != nil {
		return cli.NewCommandError("execute", err)
	}

	if err := sweep.RenderText(os.Stdout, plan); err != nil {
		return err
	}
	if err := sweep.RenderResultText(os.Stdout, result); err != nil {
		return err
	}
	if result.Failed() {
		return &cli.PartialFailureError{Failures: len(result.Failures)}
	}
	return nil
}
