// Package worker runs retention passes requested through a mailbox.
package worker

import (
	"context"
	"time"

	"github.com/raoulx24/backup-cleaner/internal/logging"
	"github.com/raoulx24/backup-cleaner/internal/mailbox"
	"github.com/raoulx24/backup-cleaner/internal/metrics"
	"github.com/raoulx24/backup-cleaner/internal/retention"
)

// Applier runs one retention pass.
type Applier interface {
	Apply(ctx context.Context) (*retention.Report, error)
}

// Worker serialises retention passes: one at a time, latest request wins.
type Worker struct {
	log     logging.Logger
	engine  Applier
	mb      *mailbox.Mailbox[Job]
	metrics *metrics.Collector
	now     func() time.Time
}

// New creates a worker. metrics may be nil.
func New(engine Applier, log logging.Logger, mb *mailbox.Mailbox[Job], m *metrics.Collector) *Worker {
	log.Debug("creating worker")
	return &Worker{
		log:     log.With("component", "worker"),
		engine:  engine,
		mb:      mb,
		metrics: m,
		now:     time.Now,
	}
}

// Start runs the worker loop until ctx is done. A pass in progress
// when ctx ends runs to completion.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")

	go func() {
		<-ctx.Done()
		w.mb.Close()
	}()

	for {
		job, ok := w.mb.Take()
		if !ok || ctx.Err() != nil {
			w.log.Info("worker stopped")
			return
		}
		_ = w.Handle(ctx, job)
	}
}

// Handle runs one pass for job and records its outcome.
func (w *Worker) Handle(ctx context.Context, job Job) error {
	w.log.Debug("handling job", "reason", job.Reason, "requested_at", job.At)

	start := w.now()
	report, err := w.engine.Apply(ctx)
	elapsed := w.now().Sub(start)

	if w.metrics != nil {
		w.metrics.Observe(report, err, elapsed, w.now())
	}

	if err != nil {
		w.log.Error("retention pass failed", "reason", job.Reason, "error", err)
		return err
	}

	w.log.Info("retention pass done",
		"reason", job.Reason,
		"run_id", report.RunID,
		"deleted", len(report.Deleted),
		"kept", len(report.Kept),
		"elapsed", elapsed,
	)
	return nil
}
