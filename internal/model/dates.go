package model

import "time"

// DateLayout is the wire format for date-only values ("2006-01-02").
const DateLayout = "2006-01-02"

// NewDate returns the UTC midnight instant for the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders a date-only value in ISO form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateToDate drops the time-of-day component, keeping the UTC day.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}
