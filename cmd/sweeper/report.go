package main

import (
	"os"

	"github.com/spf13/cobra"

	"helios-ops/sweeper/pkg/cli"
	"helios-ops/sweeper/pkg/sweep"
)

var reportFlags struct {
	output string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report what files would be purged",
	Long: `Build a purge plan and print it without mutating storage.

The policy file is re-read, the policy trees are scanned, and every
file is classified against the retention intervals. Nothing is removed.

Examples:
  # Human-readable plan
  sweeper report

  # Plan as JSON, against an alternate policy
  sweeper report -o json -p /tmp/policy.yaml`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportFlags.output, "output", "o", "text", "output format (text, json)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	purger := newPurger(cfg, logger)
	ctx := cli.SetupSignalHandler()

	plan, err := purger.Plan(ctx)
	if err != nil {
		return cli.NewCommandError("report", err)
	}

	if cli.OutputFormat(reportFlags.output) == cli.FormatJSON {
		return sweep.RenderJSON(os.Stdout, plan)
	}
	return sweep.RenderText(os.Stdout, plan)
}
