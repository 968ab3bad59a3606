// Package period computes sortable ordinals for calendar weeks and months.
//
// Ordinals from different functions must not be compared with each other.
package period

import "time"

// Func maps a date to a period ordinal.
type Func func(time.Time) int

// Week returns isoYear*100 + isoWeek for d, with weeks starting on
// Sunday: a Sunday counts toward the ISO week of the following Monday.
func Week(d time.Time) int {
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	year, week := d.ISOWeek()
	return year*100 + week
}

// Month returns year*100 + month for d.
func Month(d time.Time) int {
	return d.Year()*100 + int(d.Month())
}
