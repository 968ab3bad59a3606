package config

import "time"

type Config struct {
	Folder    string          `yaml:"folder"`
	DryRun    bool            `yaml:"dryRun"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Watch     WatchConfig     `yaml:"watch"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type RetentionConfig struct {
	Days  int `yaml:"days"`  // daily backups kept for this many days
	Weeks int `yaml:"weeks"` // weekly backups kept for this many weeks
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text"
}

type ScheduleConfig struct {
	Cron string `yaml:"cron"` // standard 5-field spec, empty disables
}

type WatchConfig struct {
	Mode           string        `yaml:"mode"`           // "off", "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 1m
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 2s
}

type MetricsConfig struct {
	Listen   string `yaml:"listen"`   // e.g. ":9108"
	Textfile string `yaml:"textfile"` // node_exporter textfile collector output
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Retention: RetentionConfig{
			Days:  14,
			Weeks: 8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Mode:           "off",
			PollInterval:   time.Minute,
			DebounceWindow: 2 * time.Second,
		},
	}
}
