// Package scheduler triggers retention passes on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/backup-cleaner/internal/logging"
	"github.com/raoulx24/backup-cleaner/internal/mailbox"
	"github.com/raoulx24/backup-cleaner/internal/worker"
)

// Scheduler posts a job to the mailbox every time the cron spec fires.
type Scheduler struct {
	mu      sync.Mutex
	spec    string
	cron    *cron.Cron
	mb      *mailbox.Mailbox[worker.Job]
	log     logging.Logger
	running bool
}

// New creates a scheduler for a standard 5-field spec or descriptor
// such as "@daily". An empty spec yields a scheduler that never fires.
func New(spec string, mb *mailbox.Mailbox[worker.Job], log logging.Logger) *Scheduler {
	return &Scheduler{
		spec: spec,
		cron: cron.New(),
		mb:   mb,
		log:  log.With("component", "scheduler"),
	}
}

// Start begins scheduling and stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spec == "" {
		s.log.Info("no schedule configured")
		return nil
	}

	if _, err := cron.ParseStandard(s.spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.spec, err)
	}

	if _, err := s.cron.AddFunc(s.spec, s.fire); err != nil {
		return fmt.Errorf("scheduling retention: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", "schedule", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) fire() {
	if s.mb.HasJob() {
		s.log.Debug("schedule fired, replacing pending job")
	} else {
		s.log.Debug("schedule fired")
	}
	s.mb.Put(worker.Job{Reason: "schedule", At: time.Now()})
}

// Stop stops the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.log.Info("scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next trigger time, or nil if none is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
