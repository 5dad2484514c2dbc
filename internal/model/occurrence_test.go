package model

import (
	"testing"
	"time"
)

func TestOccurrenceUIDStable(t *testing.T) {
	a := Occurrence{SeriesID: "reinvent", Year: 2025, Location: "Las Vegas"}
	b := Occurrence{
		SeriesID:  "reinvent",
		Year:      2025,
		StartDate: NewDate(2025, time.December, 1),
		EndDate:   NewDate(2025, time.December, 5),
		Confirmed: true,
	}
	if a.UID("tech.calendar.events") != b.UID("tech.calendar.events") {
		t.Error("UID changed for the same (series, year)")
	}
	next := Occurrence{SeriesID: "reinvent", Year: 2026}
	if a.UID("tech.calendar.events") == next.UID("tech.calendar.events") {
		t.Error("UID unchanged across years")
	}
}

func TestOccurrenceIsPast(t *testing.T) {
	today := NewDate(2025, time.June, 15)
	tests := []struct {
		name string
		occ  Occurrence
		want bool
	}{
		{"ended-before", Occurrence{StartDate: NewDate(2025, time.June, 1), EndDate: NewDate(2025, time.June, 3)}, true},
		{"ends-today", Occurrence{StartDate: NewDate(2025, time.June, 14), EndDate: NewDate(2025, time.June, 15)}, false},
		{"future", Occurrence{StartDate: NewDate(2025, time.December, 1), EndDate: NewDate(2025, time.December, 5)}, false},
		{"start-only-past", Occurrence{StartDate: NewDate(2025, time.May, 1)}, true},
		{"undated", Occurrence{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.occ.IsPast(today); got != tt.want {
				t.Errorf("IsPast = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestOccurrenceDescription(t *testing.T) {
	occ := Occurrence{
		SeriesID:        "reinvent",
		SeriesName:      "AWS re:Invent",
		Year:            2025,
		Location:        "Las Vegas, NV",
		Timezone:        "America/Los_Angeles",
		AnnouncementURL: "https://reinvent.awsevents.com",
		Confident:       true,
		Confirmed:       true,
	}
	want := "Series: AWS re:Invent\nYear: 2025\nConfirmed: true\nConfident: true\n" +
		"Location: Las Vegas, NV\nTimezone (informational): America/Los_Angeles\n" +
		"Announcement: https://reinvent.awsevents.com"
	if got := occ.Description(); got != want {
		t.Errorf("Description =\n%q\nwant\n%q", got, want)
	}

	sparse := Occurrence{SeriesID: "io", SeriesName: "Google I/O", Year: 2026}
	want = "Series: Google I/O\nYear: 2026\nConfirmed: false\nConfident: false"
	if got := sparse.Description(); got != want {
		t.Errorf("Description =\n%q\nwant\n%q", got, want)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if !got.Equal(NewDate(2024, time.June, 15)) {
		t.Errorf("ParseDate = %v, want 2024-06-15 UTC midnight", got)
	}
	if _, err := ParseDate("06/15/2024"); err == nil {
		t.Error("ParseDate accepted a non-ISO date")
	}
	if FormatDate(got) != "2024-06-15" {
		t.Errorf("FormatDate = %q", FormatDate(got))
	}
}
