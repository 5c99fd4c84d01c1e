package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickcicd/internal/generator"
	"quickcicd/pkg/template"
)

var (
	previewName    string
	previewRuntime string
	previewCache   string
)

// Used when --runtime is not given so previews stay reproducible.
var previewRuntimeDefaults = map[template.RuntimeKind]string{
	template.RuntimeNode: "20",
	template.RuntimePHP:  "8.2",
}

var previewCmd = &cobra.Command{
	Use:   "preview <type>",
	Short: "Print the files a project type would generate",
	Long: `Render the template set of a project type to stdout without prompting
and without writing anything.

Examples:
  quickcicd preview node-backend --name api --runtime 20.16.0
  quickcicd preview php-laravel-backend --name shop --runtime php:8.3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := template.ParseProjectType(args[0])
		if err != nil {
			return err
		}
		currentRun.ProjectType = string(typ)

		registry := template.NewRegistry()
		if info, ok := registry.Info(typ); ok && info.ComingSoon {
			return fmt.Errorf("%w: %s", generator.ErrUnsupportedProjectType, info.Label)
		}

		kind := typ.Runtime()
		runtime := previewRuntime
		if runtime == "" {
			runtime = previewRuntimeDefaults[kind]
		}
		cache := previewCache
		if cache == "" {
			cache = kind.DefaultCacheKey()
		}

		profile := template.Profile{
			Type:           typ,
			Name:           previewName,
			RuntimeVersion: kind.ImageRef(runtime),
			CacheKey:       cache,
		}
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("%w: %v", generator.ErrInvalidProfile, err)
		}

		artifacts, err := registry.Render(profile)
		if err != nil {
			return fmt.Errorf("failed to render templates: %w", err)
		}

		out := cmd.OutOrStdout()
		for i, a := range artifacts {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", a.Name)
			fmt.Fprint(out, a.Content)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewName, "name", "my-app", "Project name")
	previewCmd.Flags().StringVar(&previewRuntime, "runtime", "", "Runtime version or image (default node 20 / php 8.2)")
	previewCmd.Flags().StringVar(&previewCache, "cache", "", "Bitbucket Pipelines cache (default npm / composer)")
	rootCmd.AddCommand(previewCmd)
}
