package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeek(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{date(2010, 12, 26), 201052}, // Sunday
		{date(2011, 1, 1), 201052},   // Saturday, still ISO year 2010
		{date(2011, 1, 2), 201101},   // Sunday starts the first week of 2011
		{date(2011, 1, 3), 201101},
		{date(2011, 1, 8), 201101},
		{date(2011, 1, 9), 201102},
		{date(2015, 12, 31), 201553}, // 53-week year
		{date(2016, 1, 3), 201601},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			if got := Week(tt.date); got != tt.want {
				t.Errorf("Week(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestWeek_SundayMatchesFollowingMonday(t *testing.T) {
	d := date(1999, 1, 3) // Sunday
	for i := 0; i < 52*30; i++ {
		if d.Weekday() != time.Sunday {
			t.Fatalf("%s is not a Sunday", d)
		}
		monday := d.AddDate(0, 0, 1)
		if Week(d) != Week(monday) {
			t.Fatalf("Week(%s) = %d, Week(%s) = %d", d.Format("2006-01-02"), Week(d), monday.Format("2006-01-02"), Week(monday))
		}
		d = d.AddDate(0, 0, 7)
	}
}

func TestWeek_Monotonic(t *testing.T) {
	d := date(1995, 1, 1)
	end := date(2035, 1, 1)
	prev := Week(d)
	for d.Before(end) {
		d = d.AddDate(0, 0, 1)
		cur := Week(d)
		if cur < prev {
			t.Fatalf("Week decreased at %s: %d < %d", d.Format("2006-01-02"), cur, prev)
		}
		if d.Weekday() == time.Sunday && cur == prev {
			t.Fatalf("Week did not advance on Sunday %s", d.Format("2006-01-02"))
		}
		if d.Weekday() != time.Sunday && cur != prev {
			t.Fatalf("Week changed mid-week at %s", d.Format("2006-01-02"))
		}
		prev = cur
	}
}

func TestMonth(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{date(1981, 12, 18), 198112},
		{date(1982, 1, 1), 198201},
		{date(2000, 2, 29), 200002},
	}

	for _, tt := range tests {
		if got := Month(tt.date); got != tt.want {
			t.Errorf("Month(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestMonth_SameOrdinalIffSameMonth(t *testing.T) {
	d := date(1999, 11, 15)
	for i := 0; i < 200; i++ {
		other := d.AddDate(0, 0, i)
		same := d.Year() == other.Year() && d.Month() == other.Month()
		if (Month(d) == Month(other)) != same {
			t.Errorf("Month(%s) vs Month(%s): equality mismatch", d.Format("2006-01-02"), other.Format("2006-01-02"))
		}
	}
}
