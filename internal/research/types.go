package research

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rickgao/tech-calendar/internal/model"
)

// lookupPayload is the wire shape the model is instructed to answer with.
type lookupPayload struct {
	Year            int    `json:"year"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Location        string `json:"location"`
	Timezone        string `json:"timezone"`
	Confident       bool   `json:"confident"`
	Confirmed       bool   `json:"confirmed"`
	AnnouncementURL string `json:"announcement_url"`
}

// Lookup is a validated research answer for one series occurrence.
type Lookup struct {
	Year            int
	StartDate       time.Time // Zero when not announced
	EndDate         time.Time // Zero when not announced
	Location        string
	Timezone        string
	AnnouncementURL string
	Confident       bool // Multiple independent sources agree
	Confirmed       bool // An official announcement exists
}

// parseLookup decodes and validates a model answer. Malformed answers
// return *model.ValidationError so callers can retry or skip the series.
func parseLookup(raw string) (Lookup, error) {
	var payload lookupPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return Lookup{}, &model.ValidationError{Field: "answer", Reason: "is not valid JSON"}
	}

	if payload.Year < 1970 || payload.Year > 2100 {
		return Lookup{}, &model.ValidationError{
			Field:  "year",
			Reason: fmt.Sprintf("%d is out of range", payload.Year),
		}
	}

	out := Lookup{
		Year:            payload.Year,
		Location:        strings.TrimSpace(payload.Location),
		Timezone:        strings.TrimSpace(payload.Timezone),
		AnnouncementURL: strings.TrimSpace(payload.AnnouncementURL),
		Confident:       payload.Confident,
		Confirmed:       payload.Confirmed,
	}

	var err error
	if out.StartDate, err = parseOptionalDate(payload.StartDate); err != nil {
		return Lookup{}, &model.ValidationError{Field: "start_date", Reason: err.Error()}
	}
	if out.EndDate, err = parseOptionalDate(payload.EndDate); err != nil {
		return Lookup{}, &model.ValidationError{Field: "end_date", Reason: err.Error()}
	}

	if out.StartDate.IsZero() && !out.EndDate.IsZero() {
		return Lookup{}, &model.ValidationError{Field: "end_date", Reason: "requires start_date"}
	}
	if !out.StartDate.IsZero() {
		if !out.EndDate.IsZero() && out.StartDate.After(out.EndDate) {
			return Lookup{}, &model.ValidationError{Field: "start_date", Reason: "is after end_date"}
		}
		if out.StartDate.Year() != out.Year {
			return Lookup{}, &model.ValidationError{Field: "year", Reason: "does not match start_date"}
		}
		if out.EndDate.IsZero() {
			out.EndDate = out.StartDate
		}
	}

	return out, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return time.Time{}, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not an ISO date", s)
	}
	return d, nil
}

// extractJSON strips code fences and surrounding prose some models wrap
// around their JSON answer.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}
	return s
}
