package retention

import (
	"time"

	"github.com/raoulx24/backup-cleaner/internal/backup"
	"github.com/raoulx24/backup-cleaner/internal/config"
	"github.com/raoulx24/backup-cleaner/internal/period"
)

// Policy holds the retention windows. Monthly keepers have no window.
type Policy struct {
	Days  int
	Weeks int
}

func PolicyFrom(cfg config.RetentionConfig) Policy {
	return Policy{Days: cfg.Days, Weeks: cfg.Weeks}
}

func (p Policy) Validate() error {
	return config.RetentionConfig{Days: p.Days, Weeks: p.Weeks}.Validate()
}

// Reason tells which rule kept an entry.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonDaily   Reason = "daily"
	ReasonWeekly  Reason = "weekly"
	ReasonMonthly Reason = "monthly"
)

// Decision is the verdict for one entry.
type Decision struct {
	Entry  backup.Entry
	Keep   bool
	Reason Reason
}

// Decide returns one decision per entry, in input order. today must be
// a civil date at midnight UTC, like backup.Entry dates.
func Decide(entries []backup.Entry, today time.Time, p Policy) []Decision {
	roles := keeperRoles(entries)

	dailyCutoff := today.AddDate(0, 0, -p.Days)
	weeklyCutoff := period.Week(today.AddDate(0, 0, -7*p.Weeks))

	decisions := make([]Decision, 0, len(entries))
	for _, e := range entries {
		role := roles[e.Name]

		d := Decision{Entry: e, Keep: true}
		switch {
		case !e.Date.Before(dailyCutoff):
			d.Reason = ReasonDaily
		case role.Has(RoleWeekly) && period.Week(e.Date) >= weeklyCutoff:
			d.Reason = ReasonWeekly
		case role.Has(RoleMonthly):
			d.Reason = ReasonMonthly
		default:
			d.Keep = false
		}
		decisions = append(decisions, d)
	}

	return decisions
}

// Today returns the civil date of t in t's location, as midnight UTC.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
