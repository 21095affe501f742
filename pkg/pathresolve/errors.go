package pathresolve

import (
	"errors"
	"os"
)

// ResolutionError describes a failed path resolution: a missing or
// unreadable component, a symlink cycle, or a failed root change during
// alternate-root resolution.
type ResolutionError struct {
	// Op is the operation that failed, e.g. "canonicalize" or "readlink"
	Op string

	// Path is the path being resolved
	Path string

	// Err is the underlying error reported by the operating system
	Err error
}

func (e *ResolutionError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// newResolutionError wraps err as a ResolutionError. An os.PathError for
// the same path is collapsed to its inner error so the message does not
// repeat itself; errors naming a different component (for example the
// particular segment that was missing) are kept intact.
func newResolutionError(op, path string, err error) *ResolutionError {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && pathErr.Path == path {
		err = pathErr.Err
	}

	return &ResolutionError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
