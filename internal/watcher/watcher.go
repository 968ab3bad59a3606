// Package watcher monitors the backup folder and requests a retention
// pass whenever the set of entries changes.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raoulx24/backup-cleaner/internal/config"
	"github.com/raoulx24/backup-cleaner/internal/fs"
	"github.com/raoulx24/backup-cleaner/internal/fsprobe"
	"github.com/raoulx24/backup-cleaner/internal/logging"
	"github.com/raoulx24/backup-cleaner/internal/mailbox"
	"github.com/raoulx24/backup-cleaner/internal/worker"
)

// Watcher observes a folder and enqueues a job when its listing changes.
type Watcher struct {
	mu sync.RWMutex

	dir      string
	interval time.Duration
	mode     string
	debounce time.Duration

	fs  fs.FS
	log logging.Logger

	primed      bool
	lastListing string

	// cancels the strategy currently running under Start
	cancelRun context.CancelFunc

	mb *mailbox.Mailbox[worker.Job]
}

// New creates a watcher for dir. A nil filesystem means the OS one.
func New(dir string, cfg config.WatchConfig, filesystem fs.FS, log logging.Logger, mb *mailbox.Mailbox[worker.Job]) *Watcher {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Watcher{
		dir:      dir,
		interval: cfg.PollInterval,
		mode:     cfg.Mode,
		debounce: cfg.DebounceWindow,
		fs:       filesystem,
		log:      log.With("component", "watcher"),
		mb:       mb,
	}
}

// Start runs the strategy for the configured mode until ctx is done.
// UpdateConfig restarts the strategy when the folder, mode or timings
// change. Mode "off" idles until then.
//
// An error from the first strategy is returned. After a restart, errors
// are logged and the watcher waits for the next UpdateConfig.
func (w *Watcher) Start(ctx context.Context) error {
	for first := true; ; first = false {
		runCtx, cancel := context.WithCancel(ctx)

		w.mu.Lock()
		w.cancelRun = cancel
		mode, dir := w.mode, w.dir
		interval, debounce := w.interval, w.debounce
		w.mu.Unlock()

		// Remember the current listing so (re)starting does not count as a change.
		w.detect()

		err := w.run(runCtx, mode, dir, interval, debounce)
		if err != nil {
			if first {
				cancel()
				return err
			}
			w.log.Error("watcher stopped until the next reload", "dir", dir, "mode", mode, "error", err)
			<-runCtx.Done()
		}
		cancel()

		if ctx.Err() != nil {
			return nil
		}
		w.log.Info("restarting watcher", "reason", "config changed")
	}
}

func (w *Watcher) run(ctx context.Context, mode, dir string, interval, debounce time.Duration) error {
	switch mode {
	case "", "off":
		<-ctx.Done()
		return nil

	case "fsnotify":
		return w.watchEvents(ctx, dir, debounce)

	case "poll":
		w.poll(ctx, dir, interval)
		return nil

	case "auto":
		res := fsprobe.Probe(dir)
		if res.FsnotifySupported {
			return w.watchEvents(ctx, dir, debounce)
		}
		w.log.Warn("fsnotify disabled, falling back to polling", "reason", res.Reason)
		w.poll(ctx, dir, interval)
		return nil

	default:
		return fmt.Errorf("unknown watch mode %q", mode)
	}
}
