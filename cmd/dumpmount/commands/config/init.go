package config

import (
	"fmt"

	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample configuration file",
	Long: `Create a sample dumpmount configuration file with the default values.

By default the file is created at $XDG_CONFIG_HOME/dumpmount/config.yaml.
Use the global --config flag to choose a different path.

Examples:
  # Create the default config
  dumpmount config init

  # Create at a custom path
  dumpmount config init --config /etc/dumpmount/config.yaml

  # Overwrite an existing file
  dumpmount config init --force`,
	RunE: runConfigInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	// The --config flag is persistent on the root command
	configFile, _ := cmd.Flags().GetString("config")

	var configPath string
	var err error

	if configFile != "" {
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the file to set NFS options, the journal and metrics")
	fmt.Printf("  2. Point commands at it with: dumpmount --config %s\n", configPath)

	return nil
}
