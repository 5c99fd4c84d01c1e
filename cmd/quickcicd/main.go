package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quickcicd/internal/generator"
	"quickcicd/internal/prompt"
	"quickcicd/pkg/config"
	"quickcicd/pkg/logger"
	"quickcicd/pkg/manifest"
	"quickcicd/pkg/template"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "quickcicd",
	Short: "Generate Docker, PM2 and Bitbucket Pipelines files for a project",
	Long: `Interactive generator for deployment scaffolding.

Run it in the root of a React, Vite, Node.js or Laravel project. It asks for
the project type and writes Dockerfile, docker-compose.yml,
ecosystem.config.js (Node types), deploy.sh, bitbucket-pipelines.yml and an
env template into the current directory. Existing files are never
overwritten.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.Default(verbose)

		gen := generator.New(generator.Options{
			Dir:      ".",
			Registry: template.NewRegistry(),
			Prompter: prompt.NewLine(cmd.InOrStdin(), cmd.OutOrStdout()),
			Probes:   probesFor(cfg),
			Out:      cmd.OutOrStdout(),
			Log:      log,
		})

		result, err := gen.Run(cmd.Context())
		if result != nil {
			currentRun.ProjectType = string(result.Profile.Type)
			currentRun.FilesWritten = len(result.Written)
		}
		return err
	},
}

func probesFor(cfg *config.Config) map[template.RuntimeKind]manifest.Probe {
	return map[template.RuntimeKind]manifest.Probe{
		template.RuntimeNode: manifest.NodeProbe(cfg.Runtime.NodeBinary, cfg.Runtime.ProbeTimeout),
		template.RuntimePHP:  manifest.PHPProbe(cfg.Runtime.PHPBinary, cfg.Runtime.ProbeTimeout),
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging (also QUICK_CICD_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.quick-cicd/config.yaml)")
}

// SIGINT keeps its default behaviour so Ctrl-C ends a run before any file is
// written.
func main() {
	started := time.Now()
	cmd, err := rootCmd.ExecuteC()
	recordRun(cmd, started, err)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
