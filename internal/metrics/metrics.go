// Package metrics exposes Prometheus metrics for retention passes.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/raoulx24/backup-cleaner/internal/config"
	"github.com/raoulx24/backup-cleaner/internal/retention"
)

const namespace = "backup_cleaner"

// Result labels for runs_total.
const (
	ResultSuccess     = "success"
	ResultConfigError = "config_error"
	ResultFailure     = "failure"
)

// Collector records the outcome of retention passes.
type Collector struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	entries     *prometheus.CounterVec
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge
}

// NewCollector registers all metrics on registry, or on a fresh one if nil.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Retention passes by result.",
		}, []string{"result"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Folder entries seen by verdict (keep, delete, skip).",
		}, []string{"verdict"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of retention passes.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last pass that completed without error.",
		}),
	}

	registry.MustRegister(c.runs, c.entries, c.duration, c.lastSuccess)
	return c
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records one pass. report may be nil when the pass failed early.
func (c *Collector) Observe(report *retention.Report, err error, elapsed time.Duration, now time.Time) {
	c.duration.Observe(elapsed.Seconds())

	if report != nil {
		c.entries.WithLabelValues("keep").Add(float64(len(report.Kept)))
		c.entries.WithLabelValues("delete").Add(float64(len(report.Deleted)))
		c.entries.WithLabelValues("skip").Add(float64(len(report.Skipped)))
	}

	var verr *config.ValidationError
	switch {
	case err == nil:
		c.runs.WithLabelValues(ResultSuccess).Inc()
		c.lastSuccess.Set(float64(now.Unix()))
	case errors.As(err, &verr):
		c.runs.WithLabelValues(ResultConfigError).Inc()
	default:
		c.runs.WithLabelValues(ResultFailure).Inc()
	}
}

// WriteTextfile writes all metrics in the node_exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
