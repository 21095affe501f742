package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	mountFSType  string
	mountOptions []string
)

var mountCmd = &cobra.Command{
	Use:   "mount <device> <mountpoint>",
	Short: "Mount a device on a mountpoint",
	Long: `Mount a device on a mountpoint.

The mountpoint is created if it does not exist. The filesystem type
may be left empty to let the kernel detect it. A single mount attempt
is made.

Examples:
  # Mount a block device
  dumpmount mount /dev/sdb1 /mnt/disk -t ext4

  # Mount read only
  dumpmount mount /dev/sdb1 /mnt/disk -t ext4 -o ro -o noatime`,
	Args: cobra.ExactArgs(2),
	RunE: runMount,
}

func init() {
	mountCmd.Flags().StringVarP(&mountFSType, "type", "t", "",
		"filesystem type (empty lets the kernel detect it)")
	mountCmd.Flags().StringArrayVarP(&mountOptions, "option", "o", nil,
		"mount option, repeatable")
}

func runMount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	device, mountpoint := args[0], args[1]

	m := newMounter(cfg)
	defer flushMetrics(cfg)

	if err := m.Mount(device, mountpoint, mountFSType, mountOptions); err != nil {
		return err
	}

	fmt.Printf("Mounted %s on %s\n", device, mountpoint)
	return nil
}
