package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"goldiff/internal/harness"
)

var blessCmd = &cobra.Command{
	Use:   "bless [flags]",
	Short: "Regenerate failing golden transcripts from actual output",
	Long: `Run the suite and overwrite the golden file of every failing fixture
with the compiler's actual output. Use when a diagnostic change is
intentional; review the resulting diff before committing.`,
	Args: cobra.NoArgs,
	RunE: runBless,
}

func init() {
	addSuiteFlags(blessCmd)
	blessCmd.Flags().Bool("dry-run", false, "list fixtures that would be blessed without touching them")
}

func runBless(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cfg, err := loadSuite(cmd)
	if err != nil {
		return err
	}
	report, err := harness.Run(cmd.Context(), harnessOptions(cfg, nil))
	if err != nil {
		return err
	}

	blessed, err := harness.Bless(report, dryRun)
	out := cmd.OutOrStdout()
	if !quiet {
		verb := "blessed"
		if dryRun {
			verb = "would bless"
		}
		for _, rel := range blessed {
			fmt.Fprintf(out, "%s %s\n", verb, rel)
		}
		fmt.Fprintf(out, "%d of %d fixtures %s\n", len(blessed), len(report.Results), verb)
	}
	return err
}
