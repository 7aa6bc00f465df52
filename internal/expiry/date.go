// Package expiry decides whether a coupon is expired from its expiration date.
//
// Dates arrive in several textual encodings. Each encoding is recognized by a
// matcher that decomposes the text into year, month and day integers; the
// calendar date is always rebuilt from those integers in local time so a
// timezone suffix can never move the day.
package expiry

import (
	"fmt"
	"time"
)

// CalendarDate is a date without time of day.
// Fields are not range checked; In normalizes them the way time.Date does.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// In returns midnight of the date in loc.
func (d CalendarDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Normalize folds out-of-range months and days into a real date (2024-02-30 becomes 2024-03-01).
func (d CalendarDate) Normalize() CalendarDate {
	return DateOf(d.In(time.UTC))
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.In(time.UTC).Before(other.In(time.UTC))
}

// String formats the normalized date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	n := d.Normalize()
	return fmt.Sprintf("%04d-%02d-%02d", n.Year, int(n.Month), n.Day)
}
