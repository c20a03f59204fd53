// Package gameday converts calendar days in the league's local timezone
// into the UTC instant ranges used to attribute games to days.
//
// NBA game days are defined by US/Eastern wall-clock time: a game belongs
// to day D iff its start instant falls within [00:00, 24:00) Eastern of
// day D. Both window boundaries are localized independently, so the
// window is 23 or 25 hours long on daylight-saving transition days.
package gameday

import (
	"fmt"
	"time"
)

// DefaultTimeZone is the canonical local timezone for day boundaries.
const DefaultTimeZone = "America/New_York"

// Day is a calendar day in the league's local timezone.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// New constructs a Day from its components.
func New(year int, month time.Month, date int) Day {
	return Day{Year: year, Month: month, Date: date}
}

// Of projects a UTC instant onto its local calendar day.
func Of(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	return Day{Year: local.Year(), Month: local.Month(), Date: local.Day()}
}

// Window returns the half-open UTC interval [start, end) covering this
// local calendar day. Each boundary is resolved through the location
// separately rather than adding a fixed 24 hours, so DST transitions
// produce the correct 23- or 25-hour windows.
func (d Day) Window(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, loc)
	end := time.Date(d.Year, d.Month, d.Date+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}

// At localizes a wall-clock time on this day and returns the UTC
// instant. Used for vendor rows that carry an explicit local start time.
func (d Day) At(hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Date, hour, minute, 0, 0, loc).UTC()
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	t := time.Date(d.Year, d.Month, d.Date, 12, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}
}

// AddDays returns the calendar day n days after d; n may be negative.
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Date, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}
}

// After reports whether d falls after other.
func (d Day) After(other Day) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Date > other.Date
}

// String formats the day as YYYY-MM-DD, the form used in salary sheet
// filenames.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Date)
}

// Parse parses a YYYY-MM-DD string into a Day.
func Parse(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}, nil
}

// Range enumerates every calendar day in [start, end] inclusive.
func Range(start, end Day) []Day {
	var days []Day
	for d := start; !d.After(end); d = d.Next() {
		days = append(days, d)
	}
	return days
}
