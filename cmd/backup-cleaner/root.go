package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/backup-cleaner/internal/config"
	"github.com/raoulx24/backup-cleaner/internal/logging"
	"github.com/raoulx24/backup-cleaner/internal/metrics"
	"github.com/raoulx24/backup-cleaner/internal/retention"
)

const longHelp = `Cleans up backup files or folders within the specified folder. The names of these files/folders must include the backup date
in a format like: YYYY-MM-DD. Any files/folders with names not matching this pattern will be left untouched. Between
today and <days> days ago, all backups will be kept. Between today and <weeks> weeks ago, weekly backups will be kept. For
all time, monthly backups will be kept. For weekly/monthly backups, the earliest available backup from the week/month will
be kept. For example, if daily backups are present then weekly backups will be from Sunday and monthly backups will be from
the 1st of the month.

Backups from multiple projects can share one folder as long as they are named differently. If files named
aaa-2010-01-01.tar.gz and 2010-01-01.bbb.tar.bz2 exist then both will be kept. When comparing the names, only letters
are considered. For example, aaa-2010-01-01.tar.gz and aaa-2010-01-01.12.12.12.tar.gz.2 are considered to be from the same
backup project and unless these backups are from the last <days> days, one will be deleted.`

type app struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	cfgFile         string
	days            int
	weeks           int
	dryRun          bool
	logLevel        string
	logFormat       string
	metricsTextfile string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, now: time.Now}
}

func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.rootCmd()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(a.stderr, "error:", err)
	}
	return exitCode(err)
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "backup-cleaner [flags] <folder>",
		Short:         "Prune dated backups to a daily, weekly and monthly schedule",
		Long:          longHelp,
		Args:          atMostOneFolder,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runClean,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	defaults := config.Default()
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file path (YAML)")
	pf.IntVar(&a.days, "days", defaults.Retention.Days, "Number of days for which to keep daily backups")
	pf.IntVar(&a.weeks, "weeks", defaults.Retention.Weeks, "Number of weeks for which to keep weekly backups")
	pf.BoolVarP(&a.dryRun, "dry-run", "n", false, "Don't really delete anything, just print out what would have been deleted")
	pf.StringVar(&a.logLevel, "log-level", defaults.Logging.Level, "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", defaults.Logging.Format, "log format (text, json)")
	cmd.Flags().StringVar(&a.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")

	cmd.AddCommand(a.watchCmd())
	return cmd
}

func atMostOneFolder(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return &usageError{err: err}
	}
	return nil
}

// loadConfig merges defaults, the config file and explicitly set flags.
func (a *app) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return nil, &usageError{err: err}
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("days") {
		cfg.Retention.Days = a.days
	}
	if flags.Changed("weeks") {
		cfg.Retention.Weeks = a.weeks
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = a.dryRun
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if flags.Lookup("metrics-textfile") != nil && flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = a.metricsTextfile
	}
	if len(args) > 0 {
		cfg.Folder = args[0]
	}

	if cfg.Folder == "" {
		return nil, &usageError{err: errors.New("no folder specified")}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) runClean(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd, args)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging, a.stderr)
	if err != nil {
		return &usageError{err: err}
	}

	engine := retention.New(retention.OptionsFrom(cfg), log, nil).
		WithClock(a.now).
		WithOutput(a.stdout)
	collector := metrics.NewCollector(nil)

	start := time.Now()
	report, err := engine.Apply(cmd.Context())
	collector.Observe(report, err, time.Since(start), time.Now())

	if cfg.Metrics.Textfile != "" {
		if werr := collector.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			log.Warn("writing metrics textfile failed", "path", cfg.Metrics.Textfile, "error", werr)
		}
	}

	return err
}
