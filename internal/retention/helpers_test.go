package retention

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/raoulx24/backup-cleaner/internal/backup"
	"github.com/raoulx24/backup-cleaner/internal/fs"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseAll(t *testing.T, names ...string) []backup.Entry {
	t.Helper()
	entries, skipped := backup.NewParser().ParseAll(names)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped names: %v", skipped)
	}
	return entries
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

func assertSameNames(t *testing.T, got, want []string) {
	t.Helper()
	got, want = sorted(got), sorted(want)
	if len(got) != len(want) {
		t.Fatalf("got %d names, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names differ at %d: got %q, want %q\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

// fakeFS is an in-memory fs.FS recording removals.
type fakeFS struct {
	names   []string
	notDir  bool
	listErr error
	failOn  map[string]error

	stats   int
	lists   int
	removed []string
}

func (f *fakeFS) Stat(path string) (fs.FileInfo, error) {
	f.stats++
	return fs.FileInfo{Path: path, IsDir: !f.notDir}, nil
}

func (f *fakeFS) ReadDirNames(path string) ([]string, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.names...), nil
}

func (f *fakeFS) RemoveAll(ctx context.Context, path string) error {
	if err, ok := f.failOn[path]; ok {
		return err
	}
	f.removed = append(f.removed, path)
	return nil
}

// dailySeries returns aaa-YYYY-MM-DD.tar.gz for today and the n previous days.
func dailySeries(today time.Time, n int) []string {
	var names []string
	for i := 0; i <= n; i++ {
		names = append(names, fmt.Sprintf("aaa-%s.tar.gz", today.AddDate(0, 0, -i).Format("2006-01-02")))
	}
	return names
}

func dayRange(year int, month time.Month, from, to int) []string {
	var out []string
	for d := from; d <= to; d++ {
		out = append(out, date(year, month, d).Format("2006-01-02"))
	}
	return out
}
