package finnhub

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// EarningsCalendarResponse from GET /calendar/earnings
type EarningsCalendarResponse struct {
	EarningsCalendar []EarningsItem `json:"earningsCalendar"`
}

// EarningsItem represents one earnings record from the Finnhub API.
type EarningsItem struct {
	Symbol  string `json:"symbol"`
	Date    string `json:"date"` // ISO date, e.g. "2024-07-25"
	Quarter int    `json:"quarter"`
	Year    int    `json:"year"` // Fiscal year
	Hour    string `json:"hour"` // "bmo", "amc", "dmh" or empty

	// Estimates; Finnhub emits null or "" when unknown
	EPSEstimate     Nullable `json:"epsEstimate"`
	EPSActual       Nullable `json:"epsActual"`
	RevenueEstimate Nullable `json:"revenueEstimate"`
	RevenueActual   Nullable `json:"revenueActual"`
}

// Nullable is a float field that tolerates null, empty-string and
// numeric-string encodings in API responses.
type Nullable struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable) UnmarshalJSON(data []byte) error {
	n.Value, n.Valid = 0, false

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Malformed numeric string: treat as absent, not fatal
			return nil
		}
		n.Value, n.Valid = v, true
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value, n.Valid = v, true
	return nil
}

// Ptr returns the value as a pointer, nil when absent.
func (n Nullable) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
