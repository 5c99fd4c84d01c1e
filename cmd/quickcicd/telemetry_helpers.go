package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quickcicd/internal/generator"
	"quickcicd/pkg/config"
	"quickcicd/pkg/logger"
	"quickcicd/pkg/telemetry"
)

// currentRun is filled in by commands that know more about the run than the
// command path, such as the generated project type.
var currentRun telemetry.Run

func telemetryDBPath() string {
	if configPath == "" {
		return config.TelemetryDBPath()
	}
	return filepath.Join(filepath.Dir(configPath), "telemetry.db")
}

// commandName maps the root command to "generate" and subcommands to their
// path without the binary name ("templates list").
func commandName(cmd *cobra.Command) string {
	if cmd == nil || cmd == rootCmd {
		return telemetry.EventGenerate
	}
	path := cmd.CommandPath()
	return strings.TrimPrefix(path, rootCmd.Name()+" ")
}

func skipTelemetry(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == telemetryCmd {
			return true
		}
	}
	return false
}

// recordRun stores the finished invocation when telemetry is enabled. Failures
// are only logged; telemetry never changes the exit status.
func recordRun(cmd *cobra.Command, started time.Time, runErr error) {
	if skipTelemetry(cmd) {
		return
	}
	log := logger.Default(verbose)

	cfg, err := config.LoadConfig(configPath)
	if err != nil || !cfg.Telemetry.Enabled {
		return
	}

	collector, err := telemetry.NewCollector(cfg.Telemetry, telemetryDBPath())
	if err != nil {
		log.WithError(err).Debug("telemetry unavailable")
		return
	}
	defer collector.Close()

	run := currentRun
	run.Command = commandName(cmd)
	run.Started = started
	run.Failed = runErr != nil
	run.ErrorType = generator.Kind(runErr)

	if err := collector.Record(run); err != nil {
		log.WithError(err).Debug("failed to record telemetry")
	}
}

func openTelemetryDB() (*telemetry.TelemetryDB, bool, error) {
	path := telemetryDBPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, false, nil
	}
	db, err := telemetry.NewTelemetryDB(path)
	if err != nil {
		return nil, false, err
	}
	return db, true, nil
}
