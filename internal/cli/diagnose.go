package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmsuite/pathregistry/internal/diagnostics"
)

var diagnoseEssentialOnly bool
var reportFormat string

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Check every registered path against the filesystem",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()

		var report diagnostics.Report
		if diagnoseEssentialOnly {
			report = e.checker.RunEssential()
		} else {
			report = e.checker.Run()
		}
		e.metrics.RecordDiagnosis(report.Stats.High, report.Stats.Medium)

		fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", report.Status)
		for _, issue := range report.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%s): %s\n",
				issue.Severity, issue.Key, issue.Type, issue.SuggestedFix)
		}
		if !report.Healthy() {
			return fmt.Errorf("%d issue(s) found", report.Stats.Total)
		}
		return nil
	},
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Diagnose and apply every safe fix",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()

		result := e.repairer.Repair(nil)
		e.metrics.RecordRepair(len(result.Repaired), len(result.Failed))

		for _, action := range result.Repaired {
			fmt.Fprintf(cmd.OutOrStdout(), "repaired %s: %s\n", action.Key, action.Action)
		}
		for _, failure := range result.Failed {
			fmt.Fprintf(cmd.OutOrStdout(), "failed   %s: %s\n", failure.Key, failure.Reason)
		}
		if len(result.Failed) > 0 {
			return fmt.Errorf("%d issue(s) need manual attention", len(result.Failed))
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a diagnostic report for operators",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		rendered, err := e.reporter.Render(reportFormat)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	diagnoseCmd.Flags().BoolVar(&diagnoseEssentialOnly, "essential", false,
		"check only the essential watch-list")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", diagnostics.FormatText,
		"output format: text, html or json")
	rootCmd.AddCommand(diagnoseCmd, repairCmd, reportCmd)
}
