package mounter

import "fmt"

// MountError describes a failed mount, unmount or export resolution.
type MountError struct {
	// Op is the operation that failed: "mount", "nfsMount" or "unmount"
	Op string

	// Source is the device or host:directory being attached; empty for
	// operations that only involve the mountpoint
	Source string

	// Target is the local mountpoint
	Target string

	// Err is the underlying failure: the OS error from the mount
	// facility, or the resolution problem for export matching
	Err error
}

func (e *MountError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s %s on %s: %v", e.Op, e.Source, e.Target, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *MountError) Unwrap() error {
	return e.Err
}
