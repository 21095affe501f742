package commands

import (
	"fmt"
	"time"

	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/marmos91/dumpmount/pkg/pathresolve"
	"github.com/spf13/cobra"
)

var resolveRoot string

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Resolve a path to its canonical form",
	Long: `Resolve a path to its canonical form.

Follows every symlink and normalizes the result to an absolute path.
With --root the path is resolved inside the given directory as if it
were the filesystem root, so absolute symlinks inside a mounted crash
image cannot escape onto the host. Resolving under a root requires
the privileges to chroot.

Examples:
  # Canonicalize a path on the host
  dumpmount resolve /var/run/dump

  # Resolve a path inside a mounted image
  dumpmount resolve /etc/fstab --root /mnt/dump`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveRoot, "root", "",
		"resolve the path under this directory as the filesystem root")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]

	collector := config.InitializeMetrics(cfg)
	defer flushMetrics(cfg)

	operation := "canonicalize"
	if resolveRoot != "" {
		operation = "canonicalizeUnderRoot"
	}

	start := time.Now()

	var resolved string
	if resolveRoot != "" {
		resolved, err = pathresolve.CanonicalizeUnderRoot(path, resolveRoot)
	} else {
		resolved, err = pathresolve.Canonicalize(path)
	}

	collector.RecordResolution(operation, time.Since(start), err)
	if err != nil {
		return err
	}

	fmt.Println(resolved)
	return nil
}
