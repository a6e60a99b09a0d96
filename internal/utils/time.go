package util

import (
	"fmt"
	"time"
)

// LocationOrUTC resolves an IANA timezone name, falling back to UTC when
// the name is empty or unknown. Activities record the logging client's
// timezone at write time; a bad name must never fail a read path.
func LocationOrUTC(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PeriodStart truncates t to the start of its cadence period (day, week or
// month) in the given location. Weeks start on Monday.
func PeriodStart(t time.Time, period string, loc *time.Location) time.Time {
	t = t.In(loc)
	switch period {
	case "WEEK":
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		day := t.AddDate(0, 0, -(weekday - 1))
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	case "MONTH":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default: // DAY
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

// PeriodKey returns a stable bucket key for the period containing t,
// evaluated in the given location. Two activities logged on the same civil
// date in their respective zones share a key.
func PeriodKey(t time.Time, period string, loc *time.Location) string {
	t = t.In(loc)
	switch period {
	case "WEEK":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case "MONTH":
		return t.Format("2006-01")
	default: // DAY
		return t.Format("2006-01-02")
	}
}

// AddPeriods moves a period-start timestamp forward (or backward, with a
// negative n) by whole cadence periods.
func AddPeriods(t time.Time, period string, n int) time.Time {
	switch period {
	case "WEEK":
		return t.AddDate(0, 0, 7*n)
	case "MONTH":
		return t.AddDate(0, n, 0)
	default: // DAY
		return t.AddDate(0, 0, n)
	}
}
