package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/marmos91/dumpmount/internal/cli/output"
	"github.com/marmos91/dumpmount/pkg/config"
	"github.com/marmos91/dumpmount/pkg/journal"
	"github.com/marmos91/dumpmount/pkg/mounter"
	"github.com/spf13/cobra"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded attaches and whether they are still mounted",
	Long: `Show recorded attaches and whether they are still mounted.

Reads the attach journal and checks each recorded mountpoint against
the live mount table. Requires journal.enabled in the configuration.

Examples:
  # Show attach status
  dumpmount status

  # Machine readable output for scripting
  dumpmount status --output json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// statusEntry is the presentation form of a journal record enriched
// with the live mount check.
type statusEntry struct {
	ID         string    `json:"id" yaml:"id"`
	Host       string    `json:"host" yaml:"host"`
	Export     string    `json:"export" yaml:"export"`
	Remainder  string    `json:"remainder" yaml:"remainder"`
	Mountpoint string    `json:"mountpoint" yaml:"mountpoint"`
	AttachedAt time.Time `json:"attached_at" yaml:"attached_at"`
	Mounted    bool      `json:"mounted" yaml:"mounted"`
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table",
		"Output format (table|json|yaml)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}

	if !cfg.Journal.Enabled {
		fmt.Println("The attach journal is disabled; set journal.enabled to track attaches.")
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
	entries := make([]statusEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, statusEntry{
			ID:         rec.ID.String(),
			Host:       rec.Host,
			Export:     rec.Export,
			Remainder:  rec.Remainder,
			Mountpoint: rec.Mountpoint,
			AttachedAt: rec.AttachedAt,
			Mounted:    isStillMounted(m, rec),
		})
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, entries)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, entries)
	default:
		return printStatusTable(entries)
	}
}

func printStatusTable(entries []statusEntry) error {
	if len(entries) == 0 {
		fmt.Println("No attaches recorded.")
		return nil
	}

	table := output.NewTableData("Mountpoint", "Remote", "Remainder", "Attached", "Mounted")
	for _, entry := range entries {
		table.AddRow(
			entry.Mountpoint,
			entry.Host+":"+entry.Export,
			entry.Remainder,
			formatAge(entry.AttachedAt),
			yesNo(entry.Mounted),
		)
	}

	return output.PrintTable(os.Stdout, table)
}

// isStillMounted checks the record's mountpoint against the live mount
// table. Errors (for example a mountpoint directory that was removed)
// count as unmounted because the mount is gone either way.
func isStillMounted(m *mounter.Mounter, rec journal.AttachRecord) bool {
	mounted, err := m.IsMountPoint(rec.Mountpoint)
	return err == nil && mounted
}

// formatAge renders how long ago a record was written.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	age := time.Since(t).Round(time.Second)
	if age < 0 {
		age = 0
	}
	return age.String() + " ago"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
