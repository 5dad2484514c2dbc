// Package feed renders event sets into ICS calendar files. Output is
// byte-for-byte deterministic for a given entry set: subscribers re-fetch
// the feed on every poll, and spurious churn shows up as "changed event"
// notifications in their calendar apps.
package feed

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// productID identifies the generator in the PRODID calendar property.
const productID = "-//tech-calendar//techcal//EN"

// Metadata is applied to the top-level calendar.
type Metadata struct {
	Name        string // X-WR-CALNAME
	RelCalID    string // X-WR-RELCALID
	Description string // X-WR-CALDESC
}

// Entry is one all-day calendar entry.
type Entry struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time // Date-only; required
	End         time.Time // Inclusive last day; zero means single-day
	Categories  string    // Source tag; optional
	UpdatedAt   time.Time // Rendered as DTSTAMP; stable while content is
}

// SerializationError marks a feed that cannot be rendered. It is fatal for
// the workflow run; no partial feed is written.
type SerializationError struct {
	UID    string
	Reason string
}

func (e *SerializationError) Error() string {
	if e.UID == "" {
		return "serialize feed: " + e.Reason
	}
	return fmt.Sprintf("serialize feed entry %s: %s", e.UID, e.Reason)
}

// Build renders the calendar. Entries must already be sorted by the caller;
// they are emitted in order.
func Build(meta Metadata, entries []Entry) (string, error) {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetXWRCalName(meta.Name)
	cal.SetXWRCalID(meta.RelCalID)
	cal.SetXWRCalDesc(meta.Description)

	for _, entry := range entries {
		// Validated upstream during normalization; re-checked here so a
		// broken entry can never silently corrupt the published feed.
		if entry.UID == "" {
			return "", &SerializationError{Reason: "entry has no UID"}
		}
		if entry.Summary == "" {
			return "", &SerializationError{UID: entry.UID, Reason: "missing summary"}
		}
		if entry.Start.IsZero() {
			return "", &SerializationError{UID: entry.UID, Reason: "missing start date"}
		}

		ev := cal.AddEvent(entry.UID)
		if !entry.UpdatedAt.IsZero() {
			ev.SetDtStampTime(entry.UpdatedAt.UTC())
		}
		ev.SetAllDayStartAt(entry.Start)
		if !entry.End.IsZero() && !entry.End.Equal(entry.Start) {
			if entry.End.Before(entry.Start) {
				return "", &SerializationError{UID: entry.UID, Reason: "end date precedes start date"}
			}
			// DTEND is exclusive for all-day events
			ev.SetAllDayEndAt(entry.End.AddDate(0, 0, 1))
		}
		ev.SetSummary(entry.Summary)
		if entry.Description != "" {
			ev.SetDescription(entry.Description)
		}
		if entry.Categories != "" {
			ev.AddProperty(ics.ComponentPropertyCategories, entry.Categories)
		}
	}

	return cal.Serialize(), nil
}
