package watcher

import (
	"github.com/raoulx24/backup-cleaner/internal/config"
)

// UpdateConfig applies a reloaded config. A running Start switches to
// the new folder and strategy; a new folder is primed before its
// changes count.
func (w *Watcher) UpdateConfig(dir string, cfg config.WatchConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()

	restart := dir != w.dir ||
		cfg.Mode != w.mode ||
		cfg.PollInterval != w.interval ||
		cfg.DebounceWindow != w.debounce

	if dir != w.dir {
		w.primed = false
	}

	w.dir = dir
	w.interval = cfg.PollInterval
	w.mode = cfg.Mode
	w.debounce = cfg.DebounceWindow

	if restart && w.cancelRun != nil {
		w.log.Debug("watch settings changed", "dir", dir, "mode", cfg.Mode)
		w.cancelRun()
	}
}
