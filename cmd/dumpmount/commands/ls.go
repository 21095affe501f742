package commands

import (
	"fmt"

	"github.com/marmos91/dumpmount/pkg/fsutil"
	"github.com/spf13/cobra"
)

var lsDirsOnly bool

var lsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List the entries of a directory",
	Long: `List the entries of a directory.

Prints one entry name per line in lexical order. With --dirs only
subdirectories are listed, which helps discovering per-host dump
directories under an export.

Examples:
  # List everything
  dumpmount ls /mnt/dump

  # List only subdirectories
  dumpmount ls /mnt/dump --dirs`,
	Args: cobra.ExactArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolVar(&lsDirsOnly, "dirs", false, "list only directories")
}

func runLs(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	entries, err := fsutil.ListDir(args[0], lsDirsOnly)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Println(entry)
	}
	return nil
}
