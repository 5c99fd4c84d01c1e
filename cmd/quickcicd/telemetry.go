package main

import (
	"github.com/spf13/cobra"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage local usage telemetry",
	Long: `Telemetry is off by default. When enabled, each run is recorded in a
SQLite database next to the config file and never leaves this machine.`,
}

func init() {
	rootCmd.AddCommand(telemetryCmd)
}
