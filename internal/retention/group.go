package retention

import (
	"github.com/raoulx24/backup-cleaner/internal/backup"
	"github.com/raoulx24/backup-cleaner/internal/period"
)

type groupKey struct {
	period int
	prefix string
	suffix string
}

// EarliestPerGroup groups entries by period ordinal and series and returns
// the earliest entry of every group, in order of each group's first
// appearance. Equal dates are broken by the smaller name.
func EarliestPerGroup(entries []backup.Entry, fn period.Func) []backup.Entry {
	index := map[groupKey]int{}
	var earliest []backup.Entry

	for _, e := range entries {
		key := groupKey{period: fn(e.Date), prefix: e.Prefix, suffix: e.Suffix}

		i, ok := index[key]
		if !ok {
			index[key] = len(earliest)
			earliest = append(earliest, e)
			continue
		}

		cur := earliest[i]
		if e.Date.Before(cur.Date) || (e.Date.Equal(cur.Date) && e.Name < cur.Name) {
			earliest[i] = e
		}
	}

	return earliest
}

// Role marks the periods an entry represents as the earliest of its series.
type Role uint8

const (
	RoleWeekly Role = 1 << iota
	RoleMonthly
)

func (r Role) Has(other Role) bool {
	return r&other != 0
}

// keeperRoles tags every weekly and monthly keeper by name.
func keeperRoles(entries []backup.Entry) map[string]Role {
	roles := map[string]Role{}
	for _, e := range EarliestPerGroup(entries, period.Week) {
		roles[e.Name] |= RoleWeekly
	}
	for _, e := range EarliestPerGroup(entries, period.Month) {
		roles[e.Name] |= RoleMonthly
	}
	return roles
}
