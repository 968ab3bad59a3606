package fs

import (
	"errors"
	"os"
	"syscall"
)

// helpers for classifying filesystem errors.

func isTransient(err error) bool {
	if errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	return false
}

// IsNotDir reports whether err means the path is missing or is not a directory.
func IsNotDir(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
