package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"helios-ops/sweeper/pkg/cli"
	"helios-ops/sweeper/pkg/policy"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and policy files",
	Long: `Load the configuration and the retention policy and report
whether both are usable, without scanning or purging anything.

Examples:
  sweeper validate
  sweeper validate -c /etc/sweeper/config.yaml -p /tmp/policy.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadRuntime()
	if err != nil {
		return err
	}
	fmt.Println("✓ Configuration is valid")

	pol, err := policy.Load(cfg.PolicyFile)
	if err != nil {
		return cli.NewConfigError("policy_file", err.Error())
	}
	fmt.Printf("✓ Policy is valid (%d directories)\n", len(pol.Directories))
	for _, dir := range pol.Directories {
		fmt.Printf("  - %s (threshold %s)\n", dir.Path, dir.Threshold)
	}
	if cfg.Schedule != "" {
		fmt.Printf("✓ Schedule: %s\n", cfg.Schedule)
	}
	return nil
}
