package retention

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raoulx24/backup-cleaner/internal/backup"
	"github.com/raoulx24/backup-cleaner/internal/config"
	"github.com/raoulx24/backup-cleaner/internal/fs"
	"github.com/raoulx24/backup-cleaner/internal/logging"
)

// Clock returns the current time.
type Clock func() time.Time

// Options is the part of the configuration a pass depends on.
type Options struct {
	Folder string
	Policy Policy
	DryRun bool
}

func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Folder: cfg.Folder,
		Policy: PolicyFrom(cfg.Retention),
		DryRun: cfg.DryRun,
	}
}

// Report summarises one pass. In a dry run Deleted lists what would
// have been removed.
type Report struct {
	RunID   string
	Folder  string
	Today   time.Time
	DryRun  bool
	Kept    []Decision
	Deleted []string
	Skipped []string
}

// Engine lists a backup folder, decides and removes what the policy
// no longer covers.
type Engine struct {
	mu     sync.RWMutex
	opts   Options
	fs     fs.FS
	parser *backup.Parser
	log    logging.Logger
	out    io.Writer
	clock  Clock
}

// New creates an engine. A nil filesystem means the OS one.
func New(opts Options, log logging.Logger, filesystem fs.FS) *Engine {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Engine{
		opts:   opts,
		fs:     filesystem,
		parser: backup.NewParser(),
		log:    log.With("component", "retention"),
		out:    os.Stdout,
		clock:  time.Now,
	}
}

// WithClock replaces the clock used to compute today.
func (e *Engine) WithClock(c Clock) *Engine {
	e.clock = c
	return e
}

// WithOutput sets where per-entry deletion notices are printed.
func (e *Engine) WithOutput(w io.Writer) *Engine {
	e.out = w
	return e
}

// UpdateConfig hot-reloads folder and policy; a running pass keeps its snapshot.
func (e *Engine) UpdateConfig(opts Options) {
	e.mu.Lock()
	e.opts = opts
	e.mu.Unlock()
}

// Options returns the current options.
func (e *Engine) Options() Options {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opts
}

// Apply runs one pass. A *config.ValidationError means nothing was
// touched; a *DeleteError means the sweep stopped part way.
func (e *Engine) Apply(ctx context.Context) (*Report, error) {
	opts := e.Options()

	if err := e.validate(opts); err != nil {
		return nil, err
	}

	names, err := e.fs.ReadDirNames(opts.Folder)
	if err != nil {
		if fs.IsNotDir(err) {
			return nil, config.NewValidationError("folder", fmt.Sprintf("%s should be a directory", opts.Folder))
		}
		return nil, fmt.Errorf("listing %s: %w", opts.Folder, err)
	}

	report := &Report{
		RunID:  uuid.NewString(),
		Folder: opts.Folder,
		Today:  Today(e.clock()),
		DryRun: opts.DryRun,
	}
	log := e.log.With("run_id", report.RunID, "folder", opts.Folder)

	entries, skipped := e.parser.ParseAll(names)
	report.Skipped = skipped
	for _, name := range skipped {
		log.Debug("ignoring entry without date", "name", name)
	}

	log.Info("retention pass started",
		"entries", len(entries),
		"skipped", len(skipped),
		"days", opts.Policy.Days,
		"weeks", opts.Policy.Weeks,
		"dry_run", opts.DryRun,
	)

	for _, d := range Decide(entries, report.Today, opts.Policy) {
		if d.Keep {
			report.Kept = append(report.Kept, d)
			log.Debug("keeping entry", "name", d.Entry.Name, "reason", d.Reason)
			continue
		}

		if err := e.remove(ctx, opts, d.Entry.Name); err != nil {
			log.Error("delete failed, stopping sweep", "name", d.Entry.Name, "error", err)
			return report, err
		}
		report.Deleted = append(report.Deleted, d.Entry.Name)
	}

	log.Info("retention pass finished",
		"kept", len(report.Kept),
		"deleted", len(report.Deleted),
		"dry_run", opts.DryRun,
	)

	return report, nil
}

func (e *Engine) validate(opts Options) error {
	if err := opts.Policy.Validate(); err != nil {
		return err
	}

	st, err := e.fs.Stat(opts.Folder)
	if err != nil || !st.IsDir {
		return config.NewValidationError("folder", fmt.Sprintf("%s should be a directory", opts.Folder))
	}
	return nil
}

func (e *Engine) remove(ctx context.Context, opts Options, name string) error {
	if opts.DryRun {
		fmt.Fprintf(e.out, "pretending to delete (dry_run) %s\n", name)
		return nil
	}

	fmt.Fprintf(e.out, "deleting %s\n", name)

	path := filepath.Join(opts.Folder, name)
	if err := e.fs.RemoveAll(ctx, path); err != nil {
		return &DeleteError{Name: name, Path: path, Err: err}
	}
	return nil
}
