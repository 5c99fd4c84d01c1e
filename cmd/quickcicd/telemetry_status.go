package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show telemetry status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "📊 Telemetry Status")
		fmt.Fprintln(out, "------------------")
		fmt.Fprintf(out, "Enabled: %v\n", cfg.Telemetry.Enabled)
		fmt.Fprintf(out, "Data location: %s\n", telemetryDBPath())
		fmt.Fprintf(out, "Retention: %d days\n", cfg.Telemetry.RetentionDays)

		db, ok, err := openTelemetryDB()
		if err != nil {
			return fmt.Errorf("failed to open telemetry database: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "\nEvents stored: 0")
			return nil
		}
		defer db.Close()

		n, err := db.CountEvents()
		if err != nil {
			return fmt.Errorf("failed to count events: %w", err)
		}
		fmt.Fprintf(out, "\nEvents stored: %d\n", n)
		return nil
	},
}

func init() {
	telemetryCmd.AddCommand(telemetryStatusCmd)
}
