package commands

import (
	"os"
	"strconv"

	"github.com/marmos91/dumpmount/internal/cli/output"
	"github.com/marmos91/dumpmount/pkg/fsutil"
	"github.com/spf13/cobra"
)

var dfCmd = &cobra.Command{
	Use:   "df <path>",
	Short: "Show the free disk space available at a path",
	Long: `Show the free disk space available at a path.

Reports the space available to unprivileged users on the filesystem
containing the path. Useful to check that a dump target has room
before writing to it.

Examples:
  # Check free space on the dump target
  dumpmount df /mnt/dump`,
	Args: cobra.ExactArgs(1),
	RunE: runDf,
}

func runDf(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	path := args[0]

	free, err := fsutil.FreeDiskSize(path)
	if err != nil {
		return err
	}

	return output.SimpleTable(os.Stdout, [][2]string{
		{"Path", path},
		{"Free bytes", strconv.FormatUint(free, 10)},
		{"Free KiB", strconv.FormatUint(fsutil.BytesToKilobytes(free), 10)},
		{"Free MiB", strconv.FormatUint(fsutil.BytesToMegabytes(free), 10)},
	})
}
