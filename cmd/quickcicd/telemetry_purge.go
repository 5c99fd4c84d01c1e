package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var telemetryPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all recorded telemetry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		db, ok, err := openTelemetryDB()
		if err != nil {
			return fmt.Errorf("failed to open telemetry database: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "Nothing to purge")
			return nil
		}
		defer db.Close()

		deleted, err := db.Purge()
		if err != nil {
			return fmt.Errorf("failed to purge telemetry: %w", err)
		}
		fmt.Fprintf(out, "🗑️  Deleted %d events\n", deleted)
		return nil
	},
}

func init() {
	telemetryCmd.AddCommand(telemetryPurgeCmd)
}
