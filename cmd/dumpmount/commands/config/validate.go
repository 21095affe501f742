package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate the dumpmount configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate the default config
  dumpmount config validate

  # Validate a specific file
  dumpmount config validate --config /etc/dumpmount/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Determine path for display
	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	// Additional checks beyond structural validation
	var warnings []string

	if !slices.Contains(cfg.Mount.NFSOptions, "nolock") {
		warnings = append(warnings,
			"mount.nfs_options does not include \"nolock\": NFS mounts may hang when the server runs no lock manager")
	}

	if cfg.Journal.Enabled && !cfg.Metrics.Enabled {
		warnings = append(warnings,
			"journal is enabled but metrics are not: attach counts will not reach the textfile collector")
	}

	// Print results
	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Log level:    %s\n", cfg.Logging.Level)
	fmt.Printf("  NFS options:  %s\n", strings.Join(cfg.Mount.NFSOptions, ","))
	fmt.Printf("  Journal:      %s\n", enabledString(cfg.Journal.Enabled))
	fmt.Printf("  Metrics:      %s\n", enabledString(cfg.Metrics.Enabled))

	return nil
}

func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
