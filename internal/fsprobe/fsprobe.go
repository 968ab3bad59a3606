// Package fsprobe checks whether fsnotify works reliably for a directory.
// Network and FUSE mounts often accept a watch but never deliver events,
// so the probe performs a real create+remove and waits for the event.
package fsprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// probeName carries no date, so a retention pass running meanwhile ignores it.
const probeName = ".backup-cleaner-probe"

// DefaultTimeout bounds how long Probe waits for an event.
const DefaultTimeout = 200 * time.Millisecond

// Result reports whether fsnotify is usable and why.
type Result struct {
	FsnotifySupported bool   // true if events are delivered
	Reason            string // explanation when unsupported
}

// Probe tests whether fsnotify reports a file creation in dir.
func Probe(dir string) Result {
	return ProbeWithTimeout(dir, DefaultTimeout)
}

// ProbeWithTimeout is Probe with an explicit wait.
func ProbeWithTimeout(dir string, timeout time.Duration) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{false, "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{false, fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return Result{false, fmt.Sprintf("cannot watch directory: %v", err)}
	}

	path := filepath.Join(dir, probeName)
	f, err := os.Create(path)
	if err != nil {
		return Result{false, fmt.Sprintf("cannot create probe file: %v", err)}
	}
	f.Close()
	defer os.Remove(path)

	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return Result{false, "event channel closed"}
			}
			if filepath.Base(ev.Name) == probeName && ev.Has(fsnotify.Create) {
				return Result{true, ""}
			}
		case err := <-w.Errors:
			return Result{false, fmt.Sprintf("watch error: %v", err)}
		case <-deadline:
			return Result{false, "no events received"}
		}
	}
}
