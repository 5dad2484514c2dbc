package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Series is a logical annual event series defined in configuration.
type Series struct {
	ID      string   // Stable identifier (e.g. "reinvent")
	Name    string   // Display name (e.g. "AWS re:Invent")
	Queries []string // Search queries handed to the researcher
}

// Occurrence is a single annual instance of a series.
type Occurrence struct {
	SeriesID        string
	SeriesName      string    // Joined from configuration, not persisted
	Year            int       // Target year of the occurrence
	StartDate       time.Time // Zero when not announced yet
	EndDate         time.Time // Zero when not announced yet
	Location        string
	Timezone        string // Informational only; entries stay all-day
	AnnouncementURL string
	Confident       bool // Multiple independent sources agree
	Confirmed       bool // Official announcement exists
	Included        bool // Eligible for calendar output
	UpdatedAt       time.Time
}

// Key is the deduplication identity for the occurrence.
func (o Occurrence) Key() string {
	return fmt.Sprintf("%s|%d", o.SeriesID, o.Year)
}

// UID derives the stable calendar entry identifier for this occurrence.
func (o Occurrence) UID(relcalid string) string {
	return deriveUID(relcalid, "events", o.SeriesID, strconv.Itoa(o.Year))
}

// IsPast reports whether the occurrence ended before the reference date.
// Undated occurrences are never considered past.
func (o Occurrence) IsPast(today time.Time) bool {
	if !o.EndDate.IsZero() {
		return o.EndDate.Before(today)
	}
	if !o.StartDate.IsZero() {
		return o.StartDate.Before(today)
	}
	return false
}

// Title builds the calendar entry summary.
func (o Occurrence) Title() string {
	return fmt.Sprintf("%s %d", o.SeriesName, o.Year)
}

// Description builds the multi-line details block for the calendar entry.
func (o Occurrence) Description() string {
	lines := []string{
		"Series: " + o.SeriesName,
		fmt.Sprintf("Year: %d", o.Year),
		fmt.Sprintf("Confirmed: %t", o.Confirmed),
		fmt.Sprintf("Confident: %t", o.Confident),
	}
	if o.Location != "" {
		lines = append(lines, "Location: "+o.Location)
	}
	if o.Timezone != "" {
		lines = append(lines, "Timezone (informational): "+o.Timezone)
	}
	if o.AnnouncementURL != "" {
		lines = append(lines, "Announcement: "+o.AnnouncementURL)
	}
	return strings.Join(lines, "\n")
}

// ContentEquals reports whether two occurrences carry the same payload,
// excluding identity and bookkeeping fields.
func (o Occurrence) ContentEquals(other Occurrence) bool {
	return o.StartDate.Equal(other.StartDate) &&
		o.EndDate.Equal(other.EndDate) &&
		o.Location == other.Location &&
		o.Timezone == other.Timezone &&
		o.AnnouncementURL == other.AnnouncementURL &&
		o.Confident == other.Confident &&
		o.Confirmed == other.Confirmed &&
		o.Included == other.Included
}
