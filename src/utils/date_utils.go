package utils

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Brokerage exports are inconsistent: some
// carry bare calendar dates, some full timestamps with zone offsets.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"20060102",
}

// ParseFlexibleDate attempts to parse a cell as a date using the known export
// layouts. The result is truncated to a UTC calendar date. The second return
// value is false when the cell is empty or matches no layout; callers treat
// that as an absent date, never as an error.
func ParseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TruncateToDate(t), true
		}
	}
	return time.Time{}, false
}

// TruncateToDate drops the time component, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute number of whole days between two calendar
// dates. Unsorted exports can present them in either order.
func DaysBetween(a, b time.Time) int {
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
