package expiry

import (
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Matcher recognizes one textual date encoding.
type Matcher func(s string) (CalendarDate, bool)

var (
	isoDateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	isoDateTimeRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T`)
	slashDMYRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashDotDMYRe  = regexp.MustCompile(`^(\d{1,2})[-.](\d{1,2})[-.](\d{4})$`)
)

// Matchers are tried in order and the first hit wins. The day-first forms
// must stay ahead of the fallback, which reads 01/02/2024 month first.
var Matchers = []Matcher{
	ymdMatcher(isoDateRe),
	ymdMatcher(isoDateTimeRe),
	dmyMatcher(slashDMYRe),
	dmyMatcher(dashDotDMYRe),
	matchFallback,
}

func ymdMatcher(re *regexp.Regexp) Matcher {
	return func(s string) (CalendarDate, bool) {
		m := re.FindStringSubmatch(s)
		if m == nil {
			return CalendarDate{}, false
		}
		return fromParts(m[1], m[2], m[3])
	}
}

func dmyMatcher(re *regexp.Regexp) Matcher {
	return func(s string) (CalendarDate, bool) {
		m := re.FindStringSubmatch(s)
		if m == nil {
			return CalendarDate{}, false
		}
		return fromParts(m[3], m[2], m[1])
	}
}

func fromParts(year, month, day string) (CalendarDate, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return CalendarDate{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return CalendarDate{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return CalendarDate{}, false
	}
	return CalendarDate{Year: y, Month: time.Month(m), Day: d}, true
}

// matchFallback hands anything else to a generic parser and keeps the local
// wall-clock date. Inputs without an offset are read as local time.
func matchFallback(s string) (CalendarDate, bool) {
	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return CalendarDate{}, false
	}
	return DateOf(t.In(time.Local)), true
}
