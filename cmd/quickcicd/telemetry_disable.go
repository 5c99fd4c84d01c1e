package main

import (
	"github.com/spf13/cobra"
)

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable telemetry collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetryEnabled(cmd, false)
	},
}

func init() {
	telemetryCmd.AddCommand(telemetryDisableCmd)
}
