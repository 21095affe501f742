// Package fsutil bundles the small filesystem operations dump collection
// needs around mounting: directory management, listings, free space checks
// and existence probes.
//
// All functions are synchronous and stateless. Failures are reported as
// *IOError values carrying the operation, the path and the OS error.
package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// dirMode is the permission set for directories created by Mkdir
const dirMode = 0755

// Mkdir creates the directory dir. With recursive set, missing parent
// directories are created as well and an already existing directory is
// not an error, matching mkdir -p.
func Mkdir(dir string, recursive bool) error {
	var err error
	if recursive {
		err = os.MkdirAll(dir, dirMode)
	} else {
		err = os.Mkdir(dir, dirMode)
	}

	if err != nil {
		return newIOError("mkdir", dir, err)
	}
	return nil
}

// Rmdir removes the directory dir. Without recursive the directory must
// be empty. With recursive the directory and everything below it is
// deleted, matching rm -r.
func Rmdir(dir string, recursive bool) error {
	var err error
	if recursive {
		err = os.RemoveAll(dir)
	} else {
		err = os.Remove(dir)
	}

	if err != nil {
		return newIOError("rmdir", dir, err)
	}
	return nil
}

// ListDir returns the names of the entries in dir in alphabetical order.
// The special entries "." and ".." are never included. With onlyDirs set,
// entries that are not directories are skipped; symbolic links are not
// followed when deciding.
func ListDir(dir string, onlyDirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, newIOError("listdir", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if onlyDirs && !entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

// FreeDiskSize returns the number of bytes available to an unprivileged
// caller on the filesystem containing path.
func FreeDiskSize(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, newIOError("statfs", path, err)
	}

	return stat.Bavail * uint64(stat.Bsize), nil
}

// Exists reports whether path exists. Symbolic links are followed, so a
// dangling link reports false. Exists never fails; paths that cannot be
// inspected are reported as absent.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
