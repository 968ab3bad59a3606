package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/raoulx24/backup-cleaner/internal/config"
	"github.com/raoulx24/backup-cleaner/internal/logging"
	"github.com/raoulx24/backup-cleaner/internal/mailbox"
	"github.com/raoulx24/backup-cleaner/internal/metrics"
	"github.com/raoulx24/backup-cleaner/internal/retention"
	"github.com/raoulx24/backup-cleaner/internal/scheduler"
	"github.com/raoulx24/backup-cleaner/internal/watcher"
	"github.com/raoulx24/backup-cleaner/internal/worker"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [flags] [folder]",
		Short: "Keep running and prune on a schedule or when the folder changes",
		Long: `Runs one pass at startup, then again whenever the cron schedule fires or
the folder listing changes (see schedule.cron and watch.mode in the config
file). SIGHUP reloads the config file. SIGINT or SIGTERM stops.`,
		Args: atMostOneFolder,
		RunE: a.runWatch,
	}
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd, args)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging, a.stderr)
	if err != nil {
		return &usageError{err: err}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)

	mb := mailbox.New[worker.Job]()
	collector := metrics.NewCollector(nil)

	engine := retention.New(retention.OptionsFrom(cfg), log, nil).
		WithClock(a.now).
		WithOutput(a.stdout)
	w := worker.New(engine, log, mb, collector)

	// A bad folder at startup is fatal; later failures only get logged.
	if err := w.Handle(ctx, worker.Job{Reason: "startup", At: time.Now()}); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return err
		}
	}

	if cfg.Metrics.Listen != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           metricsMux(collector),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("serving metrics", "addr", cfg.Metrics.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sched := scheduler.New(cfg.Schedule.Cron, mb, log)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()
	if next := sched.NextRun(); next != nil {
		log.Info("next scheduled pass", "at", next.Format(time.RFC3339))
	}

	// The watcher runs even in mode "off" so a reload can switch it on.
	watch := watcher.New(cfg.Folder, cfg.Watch, nil, log, mb)
	var watchErr error
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		if err := watch.Start(ctx); err != nil {
			log.Error("watcher failed", "error", err)
			watchErr = fmt.Errorf("watching %s: %w", cfg.Folder, err)
			cancel()
		}
	}()

	if !sched.IsRunning() && cfg.Watch.Mode == "off" {
		log.Warn("no schedule and no watch mode configured; only SIGHUP triggers further passes")
	}

	workerDone := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(workerDone)
	}()

	go a.reloadOnHangup(ctx, hangup, cmd, args, log, engine, watch, mb)

	<-ctx.Done()
	<-workerDone
	<-watchDone
	log.Info("exit complete")
	return watchErr
}

// reloadOnHangup re-reads the config on every signal from hangup and
// queues a pass. The folder, policy and watch settings follow the new
// config; the cron schedule and metrics address only change on restart.
func (a *app) reloadOnHangup(ctx context.Context, hangup <-chan os.Signal, cmd *cobra.Command, args []string,
	log logging.Logger, engine *retention.Engine, watch *watcher.Watcher, mb *mailbox.Mailbox[worker.Job]) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hangup:
			newCfg, err := a.loadConfig(cmd, args)
			if err != nil {
				log.Error("config reload failed", "error", err)
				continue
			}

			engine.UpdateConfig(retention.OptionsFrom(newCfg))
			watch.UpdateConfig(newCfg.Folder, newCfg.Watch)
			mb.Put(worker.Job{Reason: "reload", At: time.Now()})

			log.Info("config reloaded", "folder", newCfg.Folder)
		}
	}
}

func metricsMux(c *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.Registry(), promhttp.HandlerOpts{}))
	return mux
}
