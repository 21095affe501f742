// Package pathresolve turns paths into their canonical form: absolute,
// free of symlinks and free of relative segments.
//
// Plain resolution works on the live filesystem. CanonicalizeUnderRoot
// evaluates a path as if the process root were a different directory,
// which is how paths inside a mounted dump environment are interpreted
// from outside it. Changing the root is process-global, so all
// root-changing operations serialize on a single package-level lock.
package pathresolve

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Canonicalize resolves every symbolic link and every "." and ".."
// segment in path, returning an absolute, symlink-free path.
//
// Relative paths are interpreted against the current working directory.
// Resolution follows the kernel's order: a ".." segment steps back from
// the directory a preceding symlink points to, not from the symlink
// itself, so path is deliberately not cleaned lexically beforehand.
//
// Fails with *ResolutionError if any component is missing or unreadable
// or if a symlink cycle is detected.
func Canonicalize(path string) (string, error) {
	if path == "" {
		return "", newResolutionError("canonicalize", path, fs.ErrNotExist)
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", newResolutionError("canonicalize", path, err)
		}
		path = cwd + string(filepath.Separator) + path
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", newResolutionError("canonicalize", path, err)
	}

	return resolved, nil
}

// ReadSymlink returns the target a symlink points to, without resolving
// the target any further. Fails with *ResolutionError if path is not a
// symlink or cannot be read.
func ReadSymlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", newResolutionError("readlink", path, err)
	}

	return target, nil
}

// IsSymlink reports whether path is a symbolic link. A missing path is
// not an error: absence simply means "not a symlink". Only unexpected
// failures, such as permission problems on a parent directory, are
// reported as *ResolutionError.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, unix.ENOTDIR) {
			return false, nil
		}
		return false, newResolutionError("lstat", path, err)
	}

	return info.Mode()&os.ModeSymlink != 0, nil
}
