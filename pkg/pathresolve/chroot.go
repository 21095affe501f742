package pathresolve

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// rootLock serializes every operation that changes the process root.
// The root is a single process-wide resource: two goroutines entering
// alternate roots at the same time would resolve paths against each
// other's namespaces.
var rootLock sync.Mutex

// CanonicalizeUnderRoot resolves path exactly like Canonicalize, but as
// though the filesystem root were root. Absolute symlink targets inside
// the alternate root resolve against root, not against the real root.
//
// The returned path is expressed relative to the alternate root's
// namespace: it names the file as it will be reachable through root once
// root is used as a mount or chroot boundary.
//
// The process root is changed for the duration of the call and restored
// before returning, under rootLock. Requires the privilege to chroot;
// without it the call fails with *ResolutionError.
func CanonicalizeUnderRoot(path, root string) (string, error) {
	if root == "" || root == "/" {
		return Canonicalize(path)
	}

	rootLock.Lock()
	defer rootLock.Unlock()

	// Keep a handle on the real root and the working directory so both
	// can be restored after resolving inside the alternate root
	realRoot, err := os.Open("/")
	if err != nil {
		return "", newResolutionError("canonicalizeUnderRoot", path, fmt.Errorf("open original root: %w", err))
	}
	defer realRoot.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return "", newResolutionError("canonicalizeUnderRoot", path, fmt.Errorf("read working directory: %w", err))
	}

	if err := unix.Chroot(root); err != nil {
		return "", newResolutionError("canonicalizeUnderRoot", path, fmt.Errorf("chroot to %s: %w", root, err))
	}

	resolved, resolveErr := resolveInsideRoot(path)

	// The chroot must be escaped no matter how resolution went. Failing
	// to restore the root leaves the process caged, so these errors take
	// precedence over the resolution result.
	if err := realRoot.Chdir(); err != nil {
		return "", newResolutionError("canonicalizeUnderRoot", path, fmt.Errorf("escape chroot %s: %w", root, err))
	}
	if err := unix.Chroot("."); err != nil {
		return "", newResolutionError("canonicalizeUnderRoot", path, fmt.Errorf("restore original root: %w", err))
	}
	if err := os.Chdir(cwd); err != nil {
		return "", newResolutionError("canonicalizeUnderRoot", path, fmt.Errorf("restore working directory: %w", err))
	}

	if resolveErr != nil {
		return "", resolveErr
	}

	return resolved, nil
}

// resolveInsideRoot runs with the alternate root active. Moving to its
// top first keeps relative paths from resolving against a working
// directory that belongs to the outer namespace.
func resolveInsideRoot(path string) (string, error) {
	if err := os.Chdir("/"); err != nil {
		return "", newResolutionError("canonicalizeUnderRoot", path, fmt.Errorf("enter alternate root: %w", err))
	}

	return Canonicalize(path)
}

// Chroot permanently changes the process root to dir and moves the
// working directory to its top. Unlike CanonicalizeUnderRoot there is no
// way back; this is the primitive for handing the process over to a
// captured system image.
func Chroot(dir string) error {
	rootLock.Lock()
	defer rootLock.Unlock()

	if err := unix.Chroot(dir); err != nil {
		return newResolutionError("chroot", dir, err)
	}
	if err := os.Chdir("/"); err != nil {
		return newResolutionError("chroot", dir, err)
	}

	return nil
}
