package mounter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/mount-utils"

	"github.com/marmos91/dumpmount/pkg/metrics"
)

// ============================================================================
// Test Helpers
// ============================================================================

// canonicalTempDir returns a temp directory with symlinks resolved, so
// paths compare equal to what the fake mounter records.
func canonicalTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

type fakeExportLister struct {
	exports []string
	err     error
	queried []string
}

func (f *fakeExportLister) Exports(host string) ([]string, error) {
	f.queried = append(f.queried, host)
	if f.err != nil {
		return nil, f.err
	}
	return f.exports, nil
}

// failingMounter fails every mount attempt while keeping the fake's
// behavior for everything else.
type failingMounter struct {
	*mount.FakeMounter
	mountErr error
}

func (f *failingMounter) Mount(source, target, fstype string, options []string) error {
	return f.mountErr
}

func newTestMounter(fake mount.Interface, exports []string) (*Mounter, *fakeExportLister) {
	lister := &fakeExportLister{exports: exports}
	return NewWithMounter(fake, lister, metrics.NewNoopMountMetrics()), lister
}

// ============================================================================
// Mount Tests
// ============================================================================

func TestMount(t *testing.T) {
	t.Run("MountsDevice", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, nil)
		mountpoint := canonicalTempDir(t)

		err := m.Mount("/dev/sda1", mountpoint, "ext4", []string{"ro"})

		require.NoError(t, err)
		log := fake.GetLog()
		require.Len(t, log, 1)
		assert.Equal(t, mount.FakeActionMount, log[0].Action)
		assert.Equal(t, "/dev/sda1", log[0].Source)
		assert.Equal(t, mountpoint, log[0].Target)
		assert.Equal(t, "ext4", log[0].FSType)
	})

	t.Run("CreatesMissingMountpoint", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, nil)
		mountpoint := filepath.Join(canonicalTempDir(t), "deep", "nested", "mnt")

		err := m.Mount("/dev/sda1", mountpoint, "ext4", nil)

		require.NoError(t, err)
		info, err := os.Stat(mountpoint)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("PassesOptionsThrough", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, nil)
		mountpoint := canonicalTempDir(t)

		err := m.Mount("/dev/sda1", mountpoint, "ext4", []string{"ro", "noatime"})

		require.NoError(t, err)
		require.Len(t, fake.MountPoints, 1)
		assert.Equal(t, []string{"ro", "noatime"}, fake.MountPoints[0].Opts)
	})

	t.Run("EmptyFSTypeLetsOSDetect", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, nil)
		mountpoint := canonicalTempDir(t)

		err := m.Mount("/dev/sda1", mountpoint, "", nil)

		require.NoError(t, err)
		log := fake.GetLog()
		require.Len(t, log, 1)
		assert.Equal(t, "", log[0].FSType)
	})

	t.Run("WrapsMountFailure", func(t *testing.T) {
		osErr := errors.New("no such device")
		fake := &failingMounter{FakeMounter: mount.NewFakeMounter(nil), mountErr: osErr}
		m, _ := newTestMounter(fake, nil)
		mountpoint := canonicalTempDir(t)

		err := m.Mount("/dev/sda1", mountpoint, "ext4", nil)

		var mountErr *MountError
		require.ErrorAs(t, err, &mountErr)
		assert.Equal(t, "mount", mountErr.Op)
		assert.Equal(t, "/dev/sda1", mountErr.Source)
		assert.Equal(t, mountpoint, mountErr.Target)
		assert.ErrorIs(t, err, osErr)
	})
}

// ============================================================================
// NFS Mount Tests
// ============================================================================

func TestNFSMount(t *testing.T) {
	t.Run("MountsLongestExportAndReturnsRemainder", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, []string{"/export", "/export/data"})
		mountpoint := canonicalTempDir(t)
		require.NoError(t, os.MkdirAll(filepath.Join(mountpoint, "sub"), 0755))

		remainder, err := m.NFSMount("server", "/export/data/sub", mountpoint, []string{"nolock"})

		require.NoError(t, err)
		assert.Equal(t, "sub", remainder)
		log := fake.GetLog()
		require.Len(t, log, 1)
		assert.Equal(t, mount.FakeActionMount, log[0].Action)
		assert.Equal(t, "server:/export/data", log[0].Source)
		assert.Equal(t, mountpoint, log[0].Target)
		assert.Equal(t, "nfs", log[0].FSType)
	})

	t.Run("ExactExportHasEmptyRemainder", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, []string{"/export/data"})
		mountpoint := canonicalTempDir(t)

		remainder, err := m.NFSMount("server", "/export/data", mountpoint, nil)

		require.NoError(t, err)
		assert.Equal(t, "", remainder)
		require.Len(t, fake.MountPoints, 1)
		assert.Equal(t, "server:/export/data", fake.MountPoints[0].Device)
	})

	t.Run("QueriesTheRequestedHost", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, lister := newTestMounter(fake, []string{"/export"})
		mountpoint := canonicalTempDir(t)

		_, err := m.NFSMount("server", "/export", mountpoint, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"server"}, lister.queried)
	})

	t.Run("FailsWithoutMountingWhenNoExportCovers", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, []string{"/export"})
		mountpoint := canonicalTempDir(t)

		_, err := m.NFSMount("server", "/exportxyz", mountpoint, nil)

		var mountErr *MountError
		require.ErrorAs(t, err, &mountErr)
		assert.Equal(t, "nfsMount", mountErr.Op)
		assert.Empty(t, fake.GetLog())
	})

	t.Run("FailsWithoutMountingOnEmptyExportList", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, nil)
		mountpoint := canonicalTempDir(t)

		_, err := m.NFSMount("server", "/export/data", mountpoint, nil)

		require.Error(t, err)
		assert.Empty(t, fake.GetLog())
	})

	t.Run("FailsWithoutMountingWhenExportQueryFails", func(t *testing.T) {
		queryErr := errors.New("connection refused")
		fake := mount.NewFakeMounter(nil)
		lister := &fakeExportLister{err: queryErr}
		m := NewWithMounter(fake, lister, metrics.NewNoopMountMetrics())
		mountpoint := canonicalTempDir(t)

		_, err := m.NFSMount("server", "/export/data", mountpoint, nil)

		require.ErrorIs(t, err, queryErr)
		assert.Empty(t, fake.GetLog())
	})

	t.Run("UnmountsWhenRemainderDoesNotExist", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, []string{"/export"})
		mountpoint := canonicalTempDir(t)
		// mountpoint deliberately has no "data" subdirectory

		_, err := m.NFSMount("server", "/export/data", mountpoint, nil)

		require.Error(t, err)
		log := fake.GetLog()
		require.Len(t, log, 2)
		assert.Equal(t, mount.FakeActionMount, log[0].Action)
		assert.Equal(t, mount.FakeActionUnmount, log[1].Action)
		assert.Empty(t, fake.MountPoints)
	})

	t.Run("PropagatesMountFailure", func(t *testing.T) {
		osErr := errors.New("permission denied")
		fake := &failingMounter{FakeMounter: mount.NewFakeMounter(nil), mountErr: osErr}
		m, _ := newTestMounter(fake, []string{"/export"})
		mountpoint := canonicalTempDir(t)

		_, err := m.NFSMount("server", "/export", mountpoint, nil)

		require.ErrorIs(t, err, osErr)
	})

	t.Run("NormalizesExportsFromServer", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, []string{"/export/data/"})
		mountpoint := canonicalTempDir(t)

		remainder, err := m.NFSMount("server", "/export/data", mountpoint, nil)

		require.NoError(t, err)
		assert.Equal(t, "", remainder)
		require.Len(t, fake.MountPoints, 1)
		assert.Equal(t, "server:/export/data", fake.MountPoints[0].Device)
	})
}

// ============================================================================
// Unmount Tests
// ============================================================================

func TestUnmount(t *testing.T) {
	t.Run("UnmountsMountpoint", func(t *testing.T) {
		mountpoint := canonicalTempDir(t)
		fake := mount.NewFakeMounter([]mount.MountPoint{
			{Device: "server:/export", Path: mountpoint, Type: "nfs"},
		})
		m, _ := newTestMounter(fake, nil)

		err := m.Unmount(mountpoint)

		require.NoError(t, err)
		assert.Empty(t, fake.MountPoints)
		log := fake.GetLog()
		require.Len(t, log, 1)
		assert.Equal(t, mount.FakeActionUnmount, log[0].Action)
	})

	t.Run("WrapsUnmountFailure", func(t *testing.T) {
		osErr := errors.New("target is busy")
		mountpoint := canonicalTempDir(t)
		fake := mount.NewFakeMounter([]mount.MountPoint{
			{Device: "server:/export", Path: mountpoint, Type: "nfs"},
		})
		fake.UnmountFunc = func(path string) error { return osErr }
		m, _ := newTestMounter(fake, nil)

		err := m.Unmount(mountpoint)

		var mountErr *MountError
		require.ErrorAs(t, err, &mountErr)
		assert.Equal(t, "unmount", mountErr.Op)
		assert.Equal(t, mountpoint, mountErr.Target)
		assert.ErrorIs(t, err, osErr)
	})
}

// ============================================================================
// Mount Table Tests
// ============================================================================

func TestIsMountPoint(t *testing.T) {
	t.Run("ReportsMountedPath", func(t *testing.T) {
		mountpoint := canonicalTempDir(t)
		fake := mount.NewFakeMounter([]mount.MountPoint{
			{Device: "server:/export", Path: mountpoint, Type: "nfs"},
		})
		m, _ := newTestMounter(fake, nil)

		mounted, err := m.IsMountPoint(mountpoint)

		require.NoError(t, err)
		assert.True(t, mounted)
	})

	t.Run("ReportsUnmountedPath", func(t *testing.T) {
		fake := mount.NewFakeMounter(nil)
		m, _ := newTestMounter(fake, nil)
		dir := canonicalTempDir(t)

		mounted, err := m.IsMountPoint(dir)

		require.NoError(t, err)
		assert.False(t, mounted)
	})
}

func TestList(t *testing.T) {
	mountpoint := canonicalTempDir(t)
	fake := mount.NewFakeMounter([]mount.MountPoint{
		{Device: "server:/export", Path: mountpoint, Type: "nfs"},
		{Device: "/dev/sda1", Path: "/mnt/disk", Type: "ext4"},
	})
	m, _ := newTestMounter(fake, nil)

	entries, err := m.List()

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "server:/export", entries[0].Device)
	assert.Equal(t, "ext4", entries[1].Type)
}
