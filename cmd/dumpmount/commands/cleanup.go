package commands

import (
	"errors"
	"fmt"

	"github.com/marmos91/dumpmount/internal/logger"
	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/marmos91/dumpmount/pkg/journal"
	"github.com/spf13/cobra"
)

var cleanupDetach bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Drop journal records for mountpoints that are no longer mounted",
	Long: `Drop journal records for mountpoints that are no longer mounted.

Walks the attach journal and removes every record whose mountpoint is
not in the live mount table anymore. With --detach, mountpoints that
are still mounted are unmounted first and their records dropped too.

Examples:
  # Forget stale attach records
  dumpmount cleanup

  # Unmount everything recorded and clear the journal
  dumpmount cleanup --detach`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupDetach, "detach", false,
		"unmount mountpoints that are still mounted")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.Journal.Enabled {
		fmt.Println("The attach journal is disabled; nothing to clean up.")
		return nil
	}

	j, err := config.OpenJournal(&cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	records, err := j.List()
	if err != nil {
		return err
	}

	m := newMounter(cfg)
	defer flushMetrics(cfg)

	var dropped, detached, kept int
	for _, rec := range records {
		mounted, err := m.IsMountPoint(rec.Mountpoint)
		if err != nil {
			mounted = false
		}

		if mounted {
			if !cleanupDetach {
				fmt.Printf("Keeping %s: still mounted (use --detach to unmount)\n", rec.Mountpoint)
				kept++
				continue
			}

			if err := m.Unmount(rec.Mountpoint); err != nil {
				logger.Warn("failed to unmount during cleanup",
					logger.Mountpoint(rec.Mountpoint), logger.Err(err))
				kept++
				continue
			}
			detached++
		}

		if err := j.Remove(rec.Mountpoint); err != nil && !errors.Is(err, journal.ErrNotFound) {
			return err
		}
		dropped++
	}

	fmt.Printf("Dropped %d record(s), detached %d mountpoint(s), kept %d\n", dropped, detached, kept)
	return nil
}
