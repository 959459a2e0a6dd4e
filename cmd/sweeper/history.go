package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"helios-ops/sweeper/pkg/cli"
	"helios-ops/sweeper/pkg/history"
)

var historyFlags struct {
	limit  int
	output string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sweep runs from the journal",
	Long: `List recent sweep runs recorded in the history store.

Examples:
  sweeper history
  sweeper history --limit 50 -o json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of runs to list")
	historyCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "text", "output format (text, json)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadRuntime()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return cli.NewConfigError("history.enabled", "history is disabled in the configuration")
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()
	records, err := store.List(ctx, historyFlags.limit)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if cli.OutputFormat(historyFlags.output) == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, records)
	}

	if len(records) == 0 {
		fmt.Println("no sweep runs recorded")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tMODE\tPURGED\tRECLAIMED\tFAILURES\tSTATUS")
	for _, rec := range records {
		status := "ok"
		switch {
		case rec.Error != "":
			status = "error"
		case rec.Failures > 0:
			status = "partial"
		case rec.DryRun:
			status = "dry-run"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Mode,
			rec.FilesPurged,
			humanize.IBytes(uint64(rec.BytesReclaimed)),
			rec.Failures,
			status,
		)
	}
	return w.Flush()
}
