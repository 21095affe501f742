// Package commands implements the dumpmount command line interface.
package commands

import (
	configcmd "github.com/marmos91/dumpmount/cmd/dumpmount/commands/config"
	"github.com/spf13/cobra"
)

// Version information set by main at build time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dumpmount",
	Short: "Mount and inspect filesystems for crash dump capture",
	Long: `dumpmount prepares filesystems for crash dump capture.

It queries NFS servers for their export lists, mounts the export
covering a requested directory, and resolves paths inside mounted
images without letting absolute symlinks escape onto the host.

Mount operations are deliberately plain: one attempt, no retries and
no client side timeouts, so a hung NFS server stays visible instead
of being papered over.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file path (default: $XDG_CONFIG_HOME/dumpmount/config.yaml)")

	rootCmd.AddCommand(exportsCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(detachCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(dfCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configcmd.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// GetConfigFile returns the config file path set via the --config flag.
func GetConfigFile() string {
	return cfgFile
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
