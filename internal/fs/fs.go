// Package fs defines the filesystem abstraction used by backup-cleaner.
// It provides the FS interface and the FileInfo type shared across the system.
//
// OSFS.RemoveAll retries EBUSY, EAGAIN and ETIMEDOUT a few times with
// backoff before reporting them. Every other error is returned from the
// first attempt, so a failed delete still stops a sweep at once.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	IsDir bool
}

type FS interface {
	Stat(path string) (FileInfo, error)
	// ReadDirNames lists the names directly under path, in no particular order.
	ReadDirNames(path string) ([]string, error)
	// RemoveAll deletes path and everything below it.
	RemoveAll(ctx context.Context, path string) error
}
