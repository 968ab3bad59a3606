package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/raoulx24/backup-cleaner/internal/config"
	"github.com/raoulx24/backup-cleaner/internal/retention"
)

func TestCollector_Observe(t *testing.T) {
	c := NewCollector(nil)
	now := time.Unix(1700000000, 0)

	report := &retention.Report{
		Kept:    make([]retention.Decision, 3),
		Deleted: []string{"a", "b"},
		Skipped: []string{"nodate.txt"},
	}
	c.Observe(report, nil, 20*time.Millisecond, now)
	c.Observe(nil, config.NewValidationError("folder", "missing"), time.Millisecond, now)
	c.Observe(report, errors.New("boom"), time.Millisecond, now)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"runs success", testutil.ToFloat64(c.runs.WithLabelValues(ResultSuccess)), 1},
		{"runs config_error", testutil.ToFloat64(c.runs.WithLabelValues(ResultConfigError)), 1},
		{"runs failure", testutil.ToFloat64(c.runs.WithLabelValues(ResultFailure)), 1},
		{"entries keep", testutil.ToFloat64(c.entries.WithLabelValues("keep")), 6},
		{"entries delete", testutil.ToFloat64(c.entries.WithLabelValues("delete")), 4},
		{"entries skip", testutil.ToFloat64(c.entries.WithLabelValues("skip")), 2},
		{"last success", testutil.ToFloat64(c.lastSuccess), 1700000000},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(c.duration); n != 1 {
		t.Errorf("duration metrics = %d, want 1", n)
	}
}

func TestCollector_WriteTextfile(t *testing.T) {
	c := NewCollector(nil)
	c.Observe(&retention.Report{Deleted: []string{"a"}}, nil, time.Millisecond, time.Now())

	path := filepath.Join(t.TempDir(), "backup_cleaner.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`backup_cleaner_runs_total{result="success"} 1`,
		`backup_cleaner_entries_total{verdict="delete"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
