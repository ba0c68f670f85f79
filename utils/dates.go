// utils/dates.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for every date field.
const DateLayout = "2006-01-02"

// Today returns the local calendar date of now as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Local().Format(DateLayout)
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp and returns
// the calendar date it falls on.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return BeginningOfDay(t.Local()), nil
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}
