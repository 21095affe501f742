// Package mounter attaches block devices and NFS exports to local
// mountpoints, delegating the actual syscalls to k8s.io/mount-utils.
//
// The NFS path is deliberate about what it mounts: a server's export
// list is fetched first and only a confirmed, boundary-aligned export
// prefix of the requested directory is ever passed to the mount
// facility. Mounting an unexported NFS path can block the process
// indefinitely, so guessing is not an option.
//
// All operations are synchronous single attempts. There are no retries
// and no client-side timeouts; blocking behavior is governed by the
// operating system's NFS configuration.
package mounter

import (
	"fmt"
	"time"

	"k8s.io/mount-utils"

	"github.com/marmos91/dumpmount/internal/logger"
	"github.com/marmos91/dumpmount/pkg/fsutil"
	"github.com/marmos91/dumpmount/pkg/metrics"
)

// ExportLister queries an NFS host for the directories it exports
type ExportLister interface {
	Exports(host string) ([]string, error)
}

// Mounter performs mount and unmount operations. Concurrent calls are
// safe for disjoint mountpoints; operations on the same mountpoint must
// be serialized by the caller.
type Mounter struct {
	mounter mount.Interface
	exports ExportLister
	metrics metrics.MountMetrics
}

// New builds a Mounter on top of the platform mount implementation
func New(exports ExportLister) *Mounter {
	return NewWithMounter(mount.New(""), exports, metrics.NewMountMetrics())
}

// NewWithMounter injects a specific mount implementation and metrics
// recorder. Tests use this with the fake mounter from k8s.io/mount-utils.
func NewWithMounter(m mount.Interface, exports ExportLister, mm metrics.MountMetrics) *Mounter {
	if mm == nil {
		mm = metrics.NewNoopMountMetrics()
	}

	return &Mounter{
		mounter: m,
		exports: exports,
		metrics: mm,
	}
}

// Mount attaches device at mountpoint with the given filesystem type.
// The mountpoint is created first if absent, parents included. An empty
// fstype lets the OS detect the filesystem. options are joined into a
// single comma-separated option string by the underlying implementation.
//
// One attempt, no retries; the OS error is wrapped in *MountError.
func (m *Mounter) Mount(device, mountpoint, fstype string, options []string) error {
	if err := fsutil.Mkdir(mountpoint, true); err != nil {
		return &MountError{Op: "mount", Source: device, Target: mountpoint, Err: err}
	}

	logger.Debug("mounting",
		logger.Device(device),
		logger.Mountpoint(mountpoint),
		logger.FSType(fstype),
		logger.Options(options),
	)

	start := time.Now()
	err := m.mounter.Mount(device, mountpoint, fstype, options)
	m.metrics.RecordMount(fstype, err)
	if err != nil {
		return &MountError{Op: "mount", Source: device, Target: mountpoint, Err: err}
	}

	logger.Info("mounted",
		logger.Device(device),
		logger.Mountpoint(mountpoint),
		logger.DurationMS(logger.Duration(start)),
	)

	return nil
}

// NFSMount mounts the longest exported prefix of dir from host onto
// mountpoint and returns the remainder of dir below that prefix, so the
// caller knows which subpath of mountpoint corresponds to the directory
// it asked for. The remainder is empty when dir is exported exactly.
//
// The export list is fetched from host first; if no export covers dir
// the operation fails without attempting any mount. If the remainder
// does not exist under the freshly mounted export, the export is
// unmounted again and the operation fails: a mount that does not contain
// the requested directory is useless and would only leak.
func (m *Mounter) NFSMount(host, dir, mountpoint string, options []string) (string, error) {
	requested := host + ":" + dir

	exports, err := m.exports.Exports(host)
	m.metrics.RecordExportQuery(host, len(exports), err)
	if err != nil {
		return "", &MountError{
			Op:     "nfsMount",
			Source: requested,
			Target: mountpoint,
			Err:    fmt.Errorf("query export list: %w", err),
		}
	}

	logger.Debug("export list received",
		logger.Host(host),
		logger.Exports(exports),
	)

	export, remainder, found := MatchExport(exports, dir)
	if !found {
		return "", &MountError{
			Op:     "nfsMount",
			Source: requested,
			Target: mountpoint,
			Err:    fmt.Errorf("no export of %s covers %s", host, dir),
		}
	}

	device := host + ":" + export
	if err := m.Mount(device, mountpoint, "nfs", options); err != nil {
		return "", err
	}

	if remainder != "" && !fsutil.Exists(fsutil.PathJoin(mountpoint, remainder)) {
		// The export is real but the requested subdirectory is not.
		// Take the mount down again rather than leaving it attached.
		if umountErr := m.Unmount(mountpoint); umountErr != nil {
			logger.Warn("cleanup unmount failed",
				logger.Mountpoint(mountpoint),
				logger.Err(umountErr),
			)
		}

		return "", &MountError{
			Op:     "nfsMount",
			Source: device,
			Target: mountpoint,
			Err:    fmt.Errorf("directory %q does not exist under export %s", remainder, export),
		}
	}

	logger.Info("nfs export mounted",
		logger.Host(host),
		logger.Export(export),
		logger.Mountpoint(mountpoint),
		logger.Remainder(remainder),
	)

	return remainder, nil
}

// Unmount detaches whatever is mounted at mountpoint. Single attempt,
// no retry; a busy mountpoint is reported as *MountError.
func (m *Mounter) Unmount(mountpoint string) error {
	logger.Debug("unmounting", logger.Mountpoint(mountpoint))

	err := m.mounter.Unmount(mountpoint)
	m.metrics.RecordUnmount(err)
	if err != nil {
		return &MountError{Op: "unmount", Target: mountpoint, Err: err}
	}

	logger.Info("unmounted", logger.Mountpoint(mountpoint))

	return nil
}

// IsMountPoint reports whether path currently has something mounted on it
func (m *Mounter) IsMountPoint(path string) (bool, error) {
	mounted, err := m.mounter.IsMountPoint(path)
	if err != nil {
		return false, &MountError{Op: "isMountPoint", Target: path, Err: err}
	}
	return mounted, nil
}

// List returns the mount table as seen by the underlying implementation
func (m *Mounter) List() ([]mount.MountPoint, error) {
	entries, err := m.mounter.List()
	if err != nil {
		return nil, fmt.Errorf("list mounts: %w", err)
	}
	return entries, nil
}
