package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quickcicd/pkg/template"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the built-in template sets",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project types and the files they generate",
	Long: `List all project types the generator knows about.

Examples:
  quickcicd templates list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := template.NewRegistry()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "📦 Available Templates:")
		fmt.Fprintln(out, "────────────────────────────────────────────────")
		for _, info := range registry.Types() {
			label := info.Label
			if info.ComingSoon {
				label += " [coming soon]"
			}
			fmt.Fprintf(out, "  %-22s %s\n", info.Type, label)
			if len(info.Files) > 0 {
				fmt.Fprintf(out, "    Files: %s\n", strings.Join(info.Files, ", "))
			}
			if ports := registry.Ports(info.Type); len(ports) > 0 {
				fmt.Fprintf(out, "    Ports: %s\n", strings.Join(ports, ", "))
			}
		}
		fmt.Fprintln(out, "────────────────────────────────────────────────")
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	rootCmd.AddCommand(templatesCmd)
}
