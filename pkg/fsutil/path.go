package fsutil

import "path/filepath"

// BaseName returns the last element of path, following the semantics of
// basename(1): trailing separators are removed first, the root stays "/"
// and an empty path yields ".".
//
// This is pure string manipulation; the filesystem is never consulted.
func BaseName(path string) string {
	return filepath.Base(path)
}

// DirName returns path with its last element removed, following the
// semantics of dirname(1). Like BaseName it never touches the filesystem.
func DirName(path string) string {
	return filepath.Dir(path)
}

// PathJoin joins any number of path elements with the separator, cleaning
// redundant separators from the result. Empty elements are ignored.
func PathJoin(elements ...string) string {
	return filepath.Join(elements...)
}

// Byte unit conversions for presenting sizes
const (
	bytesPerKilobyte = 1024
	bytesPerMegabyte = 1024 * 1024
)

// BytesToKilobytes converts a byte count to whole kilobytes, rounding down
func BytesToKilobytes(bytes uint64) uint64 {
	return bytes / bytesPerKilobyte
}

// BytesToMegabytes converts a byte count to whole megabytes, rounding down
func BytesToMegabytes(bytes uint64) uint64 {
	return bytes / bytesPerMegabyte
}
