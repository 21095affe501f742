package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/marmos91/dumpmount/internal/cli/output"
	mountproto "github.com/marmos91/dumpmount/internal/protocol/mount"
	"github.com/spf13/cobra"
)

var exportsCmd = &cobra.Command{
	Use:   "exports <host>",
	Short: "List the NFS exports offered by a host",
	Long: `List the NFS exports offered by a host.

Queries the MOUNT service on the host (located via the portmapper)
and prints every exported directory together with the groups allowed
to mount it.

Examples:
  # List exports of a server
  dumpmount exports nfs.example.com

  # Query by IP address
  dumpmount exports 192.168.1.10`,
	Args: cobra.ExactArgs(1),
	RunE: runExports,
}

func runExports(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	host := args[0]

	entries, err := mountproto.Exports(host)
	if err != nil {
		return fmt.Errorf("failed to query exports of %s: %w", host, err)
	}

	if len(entries) == 0 {
		fmt.Printf("%s exports nothing\n", host)
		return nil
	}

	table := output.NewTableData("Directory", "Groups")
	for _, entry := range entries {
		groups := strings.Join(entry.Groups, ", ")
		if groups == "" {
			groups = "(everyone)"
		}
		table.AddRow(entry.Directory, groups)
	}

	return output.PrintTable(os.Stdout, table)
}
