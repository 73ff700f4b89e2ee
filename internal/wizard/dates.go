package wizard

import (
	"fmt"
	"time"
)

// windowDays is the last selectable offset from today, inclusive. Together
// with today itself the calendar offers a rolling 16-day window.
const windowDays = 15

const isoDayLayout = "2006-01-02"

// ParseISODay parses a "YYYY-MM-DD" string as a local calendar day.
func ParseISODay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(isoDayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return day, nil
}

// FormatISODay renders a time as its "YYYY-MM-DD" calendar day.
func FormatISODay(t time.Time) string {
	return t.Format(isoDayLayout)
}

// StartOfDay truncates a time to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSelectable reports whether day falls in the rolling window
// [today, today+15] inclusive. Both arguments are compared date-granular.
func IsSelectable(now, day time.Time) bool {
	today := StartOfDay(now)
	d := StartOfDay(day)
	last := today.AddDate(0, 0, windowDays)
	return !d.Before(today) && !d.After(last)
}

// WindowBounds returns the first and last selectable days for now.
func WindowBounds(now time.Time) (first, last time.Time) {
	first = StartOfDay(now)
	last = first.AddDate(0, 0, windowDays)
	return first, last
}

// ISODateTime renders a calendar day as an ISO-8601 datetime at local
// midnight, the shape the reservation payload carries.
func ISODateTime(day time.Time) string {
	return StartOfDay(day).Format(time.RFC3339)
}

// SlotLabel renders the display label for a slot's time range.
func SlotLabel(from, to string) string {
	return from + " – " + to
}
