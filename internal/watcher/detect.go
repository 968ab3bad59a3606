package watcher

import (
	"sort"
	"strings"
	"time"

	"github.com/raoulx24/backup-cleaner/internal/worker"
)

// detect enqueues a job if the folder listing differs from the last one
// seen. The first successful listing only primes the watcher. It reports
// whether a job was enqueued.
func (w *Watcher) detect() bool {
	w.mu.RLock()
	dir := w.dir
	w.mu.RUnlock()

	names, err := w.fs.ReadDirNames(dir)
	if err != nil {
		w.log.Warn("listing failed", "dir", dir, "error", err)
		return false
	}
	sort.Strings(names)
	listing := strings.Join(names, "\x00")

	w.mu.Lock()
	if w.dir != dir {
		// The folder changed while listing; the next strategy primes it.
		w.mu.Unlock()
		return false
	}
	last, primed := w.lastListing, w.primed
	w.lastListing = listing
	w.primed = true
	w.mu.Unlock()

	if !primed || listing == last {
		return false
	}

	w.log.Debug("folder changed", "dir", dir, "entries", len(names))
	w.mb.Put(worker.Job{Reason: "watch", At: time.Now()})
	return true
}
