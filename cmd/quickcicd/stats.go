package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickcicd/pkg/telemetry"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	Example: `  quickcicd stats            # Last 7 days
  quickcicd stats --days 30  # Last 30 days`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsDays <= 0 {
			return fmt.Errorf("--days must be positive, got %d", statsDays)
		}
		out := cmd.OutOrStdout()

		db, ok, err := openTelemetryDB()
		if err != nil {
			return fmt.Errorf("failed to open telemetry database: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "No telemetry recorded. Enable it with 'quickcicd telemetry enable'.")
			return nil
		}
		defer db.Close()

		stats, err := db.GetStats(statsDays)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Fprint(out, "📈 ", telemetry.GetSummary(stats, statsDays))

		insights := telemetry.GenerateInsights(stats)
		if len(insights) > 0 {
			fmt.Fprintln(out, "\n💡 Insights")
			for _, insight := range insights {
				fmt.Fprintf(out, "  %s\n", telemetry.FormatInsight(insight))
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Number of days to include")
	rootCmd.AddCommand(statsCmd)
}
