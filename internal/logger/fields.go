package logger

import "log/slog"

// Standard field keys for structured logging.
// Using constants ensures consistent key names across the codebase.
const (
	KeyOperation  = "operation"
	KeyPath       = "path"
	KeyRoot       = "root"
	KeyHost       = "host"
	KeyExport     = "export"
	KeyExports    = "exports"
	KeyMountpoint = "mountpoint"
	KeyFSType     = "fstype"
	KeyOptions    = "options"
	KeyRemainder  = "remainder"
	KeyDevice     = "device"
	KeyDuration   = "duration_ms"
	KeyError      = "error"
)

// Operation returns an attr for the operation being performed
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Path returns an attr for a filesystem path
func Path(path string) slog.Attr {
	return slog.String(KeyPath, path)
}

// Root returns an attr for a resolution root directory
func Root(root string) slog.Attr {
	return slog.String(KeyRoot, root)
}

// Host returns an attr for a remote host
func Host(host string) slog.Attr {
	return slog.String(KeyHost, host)
}

// Export returns an attr for an NFS export path
func Export(export string) slog.Attr {
	return slog.String(KeyExport, export)
}

// Exports returns an attr for a server's export list
func Exports(exports []string) slog.Attr {
	return slog.Any(KeyExports, exports)
}

// Mountpoint returns an attr for a local mountpoint
func Mountpoint(mountpoint string) slog.Attr {
	return slog.String(KeyMountpoint, mountpoint)
}

// FSType returns an attr for a filesystem type
func FSType(fstype string) slog.Attr {
	return slog.String(KeyFSType, fstype)
}

// Options returns an attr for mount options
func Options(options []string) slog.Attr {
	return slog.Any(KeyOptions, options)
}

// Remainder returns an attr for the path remainder below an export
func Remainder(remainder string) slog.Attr {
	return slog.String(KeyRemainder, remainder)
}

// Device returns an attr for a block device or remote source
func Device(device string) slog.Attr {
	return slog.String(KeyDevice, device)
}

// DurationMS returns an attr for an operation duration in milliseconds
func DurationMS(ms float64) slog.Attr {
	return slog.Float64(KeyDuration, ms)
}

// Err returns an attr for an error value
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
