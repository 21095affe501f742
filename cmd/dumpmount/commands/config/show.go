package config

import (
	"os"

	"github.com/marmos91/dumpmount/internal/cli/output"
	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/spf13/cobra"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the effective dumpmount configuration.

Loads the configuration the same way every other command does (file,
environment variables, defaults) and prints the result.

Examples:
  # Show effective config as YAML
  dumpmount config show

  # Show as JSON
  dumpmount config show --output json

  # Show what a specific file resolves to
  dumpmount config show --config /etc/dumpmount/config.yaml`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "yaml", "Output format (yaml|json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, cfg)
	default:
		return output.PrintYAML(os.Stdout, cfg)
	}
}
