package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickcicd/pkg/config"
)

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable telemetry collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetryEnabled(cmd, true)
	},
}

func setTelemetryEnabled(cmd *cobra.Command, enabled bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Telemetry.Enabled = enabled
	if err := config.SaveConfig(configPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	out := cmd.OutOrStdout()
	if enabled {
		fmt.Fprintln(out, "✅ Telemetry enabled")
		fmt.Fprintf(out, "Data is stored locally in %s\n", telemetryDBPath())
		fmt.Fprintln(out, "Delete it anytime with 'quickcicd telemetry purge'")
	} else {
		fmt.Fprintln(out, "⏸️  Telemetry disabled")
		fmt.Fprintln(out, "No new data will be collected")
		fmt.Fprintf(out, "Existing data remains in %s\n", telemetryDBPath())
	}
	return nil
}

func init() {
	telemetryCmd.AddCommand(telemetryEnableCmd)
}
