// Package clock provides an abstraction for time operations to improve testability.
// Instead of calling time.Now() directly, code can use the Clock interface which
// can be mocked in tests to control time-dependent behavior.
//
// It also owns the calendar-day arithmetic behind domain.Date, so every date
// comparison in classboard happens on whole days, never on instants.
package clock

import "time"

// Clock is an interface for time operations.
// This allows code to be tested with mock clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock frozen at a given instant. The CLI uses it for --today.
type Fixed time.Time

// Now returns the frozen instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Ensure both implement Clock.
var (
	_ Clock = RealClock{}
	_ Clock = Fixed{}
)

// StartOfDay truncates t to midnight in loc. Hours, minutes and seconds are
// dropped so that a task starting "today at 14:00" compares equal to today.
// A nil loc means time.Local.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of whole calendar days from a to b in loc.
// It is negative when b is before a. Calendar dates are compared rather than
// durations so daylight-saving shifts do not produce off-by-one results.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	sa := StartOfDay(a, loc)
	sb := StartOfDay(b, loc)
	ua := time.Date(sa.Year(), sa.Month(), sa.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(sb.Year(), sb.Month(), sb.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// AddDays returns the start of the day n calendar days after t in loc.
func AddDays(t time.Time, n int, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, n)
}
