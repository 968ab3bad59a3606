package watcher

import (
	"context"
	"time"
)

// poll lists dir every interval until ctx is done. The interval counts
// from the end of the previous listing.
func (w *Watcher) poll(ctx context.Context, dir string, interval time.Duration) {
	w.log.Info("polling folder", "dir", dir, "interval", interval)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("polling stopped", "dir", dir)
			return
		case <-timer.C:
			w.detect()
			timer.Reset(interval)
		}
	}
}
