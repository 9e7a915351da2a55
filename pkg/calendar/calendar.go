// Package calendar provides the date arithmetic the goal engine is built
// on. Every date that participates in comparisons or map keys is first
// normalized to noon so DST transitions cannot shift a day boundary.
package calendar

import (
	"math"
	"time"
)

// DayKeyLayout is the ISO form used for map keys and chart labels.
const DayKeyLayout = "2006-01-02"

// NormalizeToNoon pins a date to 12:00 local time on the same calendar day.
func NormalizeToNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

// StartOfDay returns 00:00:00 of the same calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999999999 of the same calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 12, 0, 0, 0, t.Location()).Day()
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// StartOfWeek returns the Monday of t's week, normalized to noon.
func StartOfWeek(t time.Time) time.Time {
	t = NormalizeToNoon(t)
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of t's month, normalized to noon.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, t.Location())
}

// StartOfYear returns January 1st of t's year, normalized to noon.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 12, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DayDiff returns the number of calendar days from a to b (positive when b
// is after a). Both ends are normalized first, so partial days never skew
// the count. A DST transition makes the noon-to-noon span 23 or 25 hours
// for one of the days, so the quotient is rounded rather than truncated.
func DayDiff(a, b time.Time) int {
	a = NormalizeToNoon(a)
	b = NormalizeToNoon(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// DayKey renders t as an ISO YYYY-MM-DD string.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
