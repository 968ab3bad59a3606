package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var (
	validLevels     = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats    = map[string]bool{"text": true, "json": true}
	validWatchModes = map[string]bool{"off": true, "auto": true, "poll": true, "fsnotify": true}
)

// Validate checks every section and returns the first problem found.
// The folder itself is checked when a pass starts, not here.
func (c *Config) Validate() error {
	if err := c.Retention.Validate(); err != nil {
		return err
	}
	if !validLevels[c.Logging.Level] {
		return NewValidationError("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}
	if !validFormats[c.Logging.Format] {
		return NewValidationError("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}
	if c.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return NewValidationError("schedule.cron", err.Error())
		}
	}
	if !validWatchModes[c.Watch.Mode] {
		return NewValidationError("watch.mode", fmt.Sprintf("unknown mode %q", c.Watch.Mode))
	}
	if c.Watch.Mode == "poll" || c.Watch.Mode == "auto" {
		if c.Watch.PollInterval <= 0 {
			return NewValidationError("watch.pollInterval", "must be positive")
		}
	}
	if c.Watch.DebounceWindow < 0 {
		return NewValidationError("watch.debounceWindow", "must not be negative")
	}
	return nil
}

// Validate checks the retention windows.
func (r RetentionConfig) Validate() error {
	if r.Days < 0 {
		return NewValidationError("retention.days", fmt.Sprintf("must be a non-negative integer, got %d", r.Days))
	}
	if r.Weeks < 0 {
		return NewValidationError("retention.weeks", fmt.Sprintf("must be a non-negative integer, got %d", r.Weeks))
	}
	return nil
}
