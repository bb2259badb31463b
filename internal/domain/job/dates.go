package job

import (
	"time"
)

// DateLayout is the ISO calendar date form every date field is stored in.
const DateLayout = "2006-01-02"

// ExportDateLayout is the DD-MM-YYYY form used by the CSV export.
const ExportDateLayout = "02-01-2006"

// ParseDate parses an ISO calendar date. Blank input is not a date.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a time as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts an ISO calendar date by n calendar days. The zero time
// base is whatever t carries; callers pass "today".
func AddDays(t time.Time, n int) string {
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// OnOrBefore reports whether date a (ISO) is a valid date falling on or
// before date b (ISO). Either side failing to parse yields false.
func OnOrBefore(a, b string) bool {
	ta, ok := ParseDate(a)
	if !ok {
		return false
	}
	tb, ok := ParseDate(b)
	if !ok {
		return false
	}
	return !ta.After(tb)
}
