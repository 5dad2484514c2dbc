// Package retention computes the date windows that bound which stored
// events are displayed and which are pruned. Policies are pure functions of
// configuration and the reference date.
package retention

import "time"

// Policy holds the feed's time horizons.
type Policy struct {
	// RetentionYears is the trailing span beyond which stored events are
	// pruned from the deduplication store.
	RetentionYears int

	// DaysAhead and DaysPast bound the sliding display window of the
	// rendered feed.
	DaysAhead int
	DaysPast  int
}

// DisplayWindow returns the inclusive [start, end] date range of events
// included in a rendered feed, relative to today.
func (p Policy) DisplayWindow(today time.Time) (start, end time.Time) {
	return today.AddDate(0, 0, -p.DaysPast), today.AddDate(0, 0, p.DaysAhead)
}

// RetentionCutoff returns the date before which stored events are pruned.
func (p Policy) RetentionCutoff(today time.Time) time.Time {
	return today.AddDate(-p.RetentionYears, 0, 0)
}
