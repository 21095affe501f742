package pathresolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canonicalTempDir returns a fresh temp dir with any symlinked parents
// already resolved, so expected values can be built by joining onto it.
func canonicalTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// ============================================================================
// Canonicalize Tests
// ============================================================================

func TestCanonicalize(t *testing.T) {
	t.Run("ReturnsCleanAbsolutePathUnchanged", func(t *testing.T) {
		dir := canonicalTempDir(t)
		sub := filepath.Join(dir, "crash")
		require.NoError(t, os.Mkdir(sub, 0755))

		resolved, err := Canonicalize(sub)
		require.NoError(t, err)
		assert.Equal(t, sub, resolved)
	})

	t.Run("ResolvesDotDotSegments", func(t *testing.T) {
		dir := canonicalTempDir(t)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0755))

		resolved, err := Canonicalize(dir + "/a/../a/b/.")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "a", "b"), resolved)
	})

	t.Run("ResolvesSymlinkChain", func(t *testing.T) {
		dir := canonicalTempDir(t)
		target := filepath.Join(dir, "vmcore")
		require.NoError(t, os.WriteFile(target, []byte("dump"), 0644))

		first := filepath.Join(dir, "first")
		second := filepath.Join(dir, "second")
		require.NoError(t, os.Symlink(target, first))
		require.NoError(t, os.Symlink(first, second))

		resolved, err := Canonicalize(second)
		require.NoError(t, err)
		assert.Equal(t, target, resolved)
	})

	t.Run("DotDotStepsBackFromSymlinkTarget", func(t *testing.T) {
		// With ln -> real/sub, "ln/.." must resolve to "real", the parent
		// of the target, not to the directory containing the link
		dir := canonicalTempDir(t)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "real", "sub"), 0755))
		require.NoError(t, os.Symlink(filepath.Join(dir, "real", "sub"), filepath.Join(dir, "ln")))

		resolved, err := Canonicalize(dir + "/ln/..")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "real"), resolved)
	})

	t.Run("ResolvesRelativePathAgainstWorkingDirectory", func(t *testing.T) {
		dir := canonicalTempDir(t)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "crash"), 0755))
		oldwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(oldwd) })

		resolved, err := Canonicalize("crash")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "crash"), resolved)
	})

	t.Run("FailsOnMissingPath", func(t *testing.T) {
		dir := canonicalTempDir(t)

		_, err := Canonicalize(filepath.Join(dir, "absent", "vmcore"))
		require.Error(t, err)

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "canonicalize", resErr.Op)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("FailsOnSymlinkCycle", func(t *testing.T) {
		dir := canonicalTempDir(t)
		first := filepath.Join(dir, "first")
		second := filepath.Join(dir, "second")
		require.NoError(t, os.Symlink(second, first))
		require.NoError(t, os.Symlink(first, second))

		_, err := Canonicalize(first)
		require.Error(t, err)

		var resErr *ResolutionError
		assert.ErrorAs(t, err, &resErr)
	})

	t.Run("FailsOnEmptyPath", func(t *testing.T) {
		_, err := Canonicalize("")
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

// ============================================================================
// ReadSymlink Tests
// ============================================================================

func TestReadSymlink(t *testing.T) {
	t.Run("ReturnsTarget", func(t *testing.T) {
		dir := t.TempDir()
		link := filepath.Join(dir, "latest")
		require.NoError(t, os.Symlink("/var/crash/2026-08-25", link))

		target, err := ReadSymlink(link)
		require.NoError(t, err)
		assert.Equal(t, "/var/crash/2026-08-25", target)
	})

	t.Run("ReturnsTargetOfDanglingLink", func(t *testing.T) {
		dir := t.TempDir()
		link := filepath.Join(dir, "dangling")
		require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))

		target, err := ReadSymlink(link)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "gone"), target)
	})

	t.Run("FailsOnRegularFile", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := ReadSymlink(file)
		require.Error(t, err)

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "readlink", resErr.Op)
	})

	t.Run("FailsOnMissingPath", func(t *testing.T) {
		_, err := ReadSymlink(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

// ============================================================================
// IsSymlink Tests
// ============================================================================

func TestIsSymlink(t *testing.T) {
	t.Run("TrueForSymlink", func(t *testing.T) {
		dir := t.TempDir()
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(dir, link))

		isLink, err := IsSymlink(link)
		require.NoError(t, err)
		assert.True(t, isLink)
	})

	t.Run("TrueForDanglingSymlink", func(t *testing.T) {
		dir := t.TempDir()
		link := filepath.Join(dir, "dangling")
		require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))

		isLink, err := IsSymlink(link)
		require.NoError(t, err)
		assert.True(t, isLink)
	})

	t.Run("FalseForRegularFile", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		isLink, err := IsSymlink(file)
		require.NoError(t, err)
		assert.False(t, isLink)
	})

	t.Run("FalseForDirectory", func(t *testing.T) {
		isLink, err := IsSymlink(t.TempDir())
		require.NoError(t, err)
		assert.False(t, isLink)
	})

	t.Run("FalseWithoutErrorForMissingPath", func(t *testing.T) {
		isLink, err := IsSymlink(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.False(t, isLink)
	})

	t.Run("FalseWithoutErrorForFileUnderFile", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		isLink, err := IsSymlink(filepath.Join(file, "below"))
		require.NoError(t, err)
		assert.False(t, isLink)
	})
}
