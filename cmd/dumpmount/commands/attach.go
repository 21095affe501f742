package commands

import (
	"fmt"
	"strings"

	"github.com/marmos91/dumpmount/internal/logger"
	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/marmos91/dumpmount/pkg/fsutil"
	"github.com/marmos91/dumpmount/pkg/journal"
	"github.com/marmos91/dumpmount/pkg/mounter"
	"github.com/spf13/cobra"
)

var attachOptions []string

var attachCmd = &cobra.Command{
	Use:   "attach <host>:<dir> <mountpoint>",
	Short: "Mount the NFS export covering a remote directory",
	Long: `Mount the NFS export covering a remote directory.

The host's export list is queried first and the longest export whose
path covers the requested directory is mounted. When the requested
directory lies below the export root the command prints where it
ended up under the mountpoint.

The mountpoint is created if it does not exist. Nothing is mounted
when no export covers the requested directory.

Examples:
  # Mount the export covering /export/crash/web01
  dumpmount attach nfs.example.com:/export/crash/web01 /mnt/dump

  # Pass explicit NFS options instead of the configured ones
  dumpmount attach nfs.example.com:/export /mnt/dump -o nolock -o vers=3`,
	Args: cobra.ExactArgs(2),
	RunE: runAttach,
}

func init() {
	attachCmd.Flags().StringArrayVarP(&attachOptions, "option", "o", nil,
		"NFS mount option, repeatable (default: mount.nfs_options from config)")
}

func runAttach(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host, dir, err := splitHostDir(args[0])
	if err != nil {
		return err
	}
	mountpoint := args[1]

	options := attachOptions
	if options == nil {
		options = cfg.Mount.NFSOptions
	}

	m := newMounter(cfg)
	defer flushMetrics(cfg)

	remainder, err := m.NFSMount(host, dir, mountpoint, options)
	if err != nil {
		return err
	}

	export := mountedExport(dir, remainder)
	fmt.Printf("Mounted %s:%s on %s\n", host, export, mountpoint)
	if remainder != "" {
		fmt.Printf("Requested directory: %s\n", fsutil.PathJoin(mountpoint, remainder))
	}

	if cfg.Journal.Enabled {
		if err := recordAttach(cfg, host, export, dir, remainder, mountpoint, options); err != nil {
			logger.Warn("failed to record attach in journal", logger.Err(err))
		}
	}

	return nil
}

// mountedExport reconstructs the export that was mounted from the
// requested directory and the remainder below the export root.
func mountedExport(dir, remainder string) string {
	requested := mounter.NormalizeExportPath(dir)
	if remainder == "" {
		return requested
	}

	export := strings.TrimSuffix(requested, "/"+remainder)
	if export == "" {
		return "/"
	}
	return export
}

func recordAttach(cfg *config.Config, host, export, dir, remainder, mountpoint string, options []string) error {
	j, err := config.OpenJournal(&cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	return j.Record(&journal.AttachRecord{
		Host:         host,
		Export:       export,
		RequestedDir: mounter.NormalizeExportPath(dir),
		Remainder:    remainder,
		Mountpoint:   mountpoint,
		Options:      options,
	})
}
