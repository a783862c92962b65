package clock

import (
	"fmt"
	"time"
)

// Date is a calendar date in the reference time zone with the time of day
// discarded. All window and streak comparisons operate on Dates, never on
// raw timestamps.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf converts an instant to the calendar date it falls on in loc
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n calendar days later (earlier for negative n)
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day}
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// SameMonth reports whether both dates share year and month
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// Weekday returns the day of week of d
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ReferenceClock supplies "today", the reference time zone and the week
// start for every aggregation. It is injected explicitly so tests can fix
// the current date; aggregation code must never read ambient time.
type ReferenceClock struct {
	loc       *time.Location
	weekStart time.Weekday
	now       func() time.Time
}

// New creates a clock backed by the system time
func New(loc *time.Location, weekStart time.Weekday) ReferenceClock {
	return ReferenceClock{loc: loc, weekStart: weekStart, now: time.Now}
}

// NewFixed creates a clock frozen at the given instant, for tests
func NewFixed(at time.Time, loc *time.Location, weekStart time.Weekday) ReferenceClock {
	return ReferenceClock{loc: loc, weekStart: weekStart, now: func() time.Time { return at }}
}

// Location returns the reference time zone
func (c ReferenceClock) Location() *time.Location {
	return c.loc
}

// Today returns the current calendar date in the reference zone
func (c ReferenceClock) Today() Date {
	return DateOf(c.now(), c.loc)
}

// StartOfWeek returns the most recent week-start day on or before d
func (c ReferenceClock) StartOfWeek(d Date) Date {
	back := (int(d.Weekday()) - int(c.weekStart) + 7) % 7
	return d.AddDays(-back)
}

// StartOfMonth returns the first day of d's month
func (c ReferenceClock) StartOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}
