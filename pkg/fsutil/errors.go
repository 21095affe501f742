package fsutil

import (
	"errors"
	"os"
)

// IOError describes a failed filesystem operation. It carries the
// operation name and the path it was applied to alongside the underlying
// operating system error.
type IOError struct {
	// Op is the operation that failed, e.g. "mkdir" or "listdir"
	Op string

	// Path is the file or directory the operation was applied to
	Path string

	// Err is the underlying error reported by the operating system
	Err error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// newIOError wraps err as an IOError. os.PathError values are collapsed
// to their inner error so op and path do not appear twice in the message.
func newIOError(op, path string, err error) *IOError {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}

	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
