package commands

import (
	"errors"
	"fmt"

	"github.com/marmos91/dumpmount/internal/logger"
	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/marmos91/dumpmount/pkg/journal"
	"github.com/spf13/cobra"
)

var detachCmd = &cobra.Command{
	Use:   "detach <mountpoint>",
	Short: "Unmount a mountpoint",
	Long: `Unmount a mountpoint.

A single unmount attempt is made. If the attach journal is enabled
the record for the mountpoint is dropped once the unmount succeeds.

Examples:
  # Unmount a previously attached export
  dumpmount detach /mnt/dump`,
	Args: cobra.ExactArgs(1),
	RunE: runDetach,
}

func runDetach(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mountpoint := args[0]

	m := newMounter(cfg)
	defer flushMetrics(cfg)

	if err := m.Unmount(mountpoint); err != nil {
		return err
	}

	fmt.Printf("Unmounted %s\n", mountpoint)

	if cfg.Journal.Enabled {
		if err := dropAttach(cfg, mountpoint); err != nil {
			logger.Warn("failed to drop attach record",
				logger.Mountpoint(mountpoint), logger.Err(err))
		}
	}

	return nil
}

// dropAttach removes the journal record for the mountpoint. A missing
// record is not an error: the mount may never have been journaled.
func dropAttach(cfg *config.Config, mountpoint string) error {
	j, err := config.OpenJournal(&cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.Remove(mountpoint); err != nil && !errors.Is(err, journal.ErrNotFound) {
		return err
	}
	return nil
}
