package expiry

import (
	"fmt"
	"strings"
	"time"
)

// ParseCalendarDate turns raw into a calendar date.
//
// raw is usually a string from a request body or a time.Time read back from a
// DATE column. Anything else is formatted with fmt and matched as text.
// nil and blank strings have no date.
func ParseCalendarDate(raw any) (CalendarDate, bool) {
	var s string
	switch v := raw.(type) {
	case nil:
		return CalendarDate{}, false
	case time.Time:
		if v.IsZero() {
			return CalendarDate{}, false
		}
		return DateOf(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return CalendarDate{}, false
		}
		return DateOf(*v), true
	case string:
		s = v
	case *string:
		if v == nil {
			return CalendarDate{}, false
		}
		s = *v
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarDate{}, false
	}

	for _, match := range Matchers {
		if d, ok := match(s); ok {
			return d, true
		}
	}
	return CalendarDate{}, false
}

// IsExpired reports whether raw is strictly before today's local date.
// A value with no usable date is never expired.
func IsExpired(raw any) bool {
	return IsExpiredAt(raw, time.Now())
}

// IsExpiredAt is IsExpired with an explicit clock. Only now's local calendar date is used.
func IsExpiredAt(raw any, now time.Time) bool {
	exp, ok := ParseCalendarDate(raw)
	if !ok {
		return false
	}
	today := DateOf(now.In(time.Local))
	return exp.Before(today)
}
