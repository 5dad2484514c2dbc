package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EarningsEvent is one quarterly earnings report date for a ticker.
type EarningsEvent struct {
	Ticker          string    // Upper-cased symbol (e.g. "AAPL")
	Date            time.Time // Report date, UTC midnight
	Quarter         int       // Fiscal quarter, 1-4
	FiscalYear      int       // Fiscal year; 0 if the source omitted it
	EPSEstimate     *float64  // Consensus EPS estimate, if published
	RevenueEstimate *float64  // Consensus revenue estimate, if published
	Source          string    // Data source tag (e.g. "Finnhub")
	UpdatedAt       time.Time // Last time the stored snapshot changed
}

// EventYear returns the fiscal year, falling back to the calendar year of
// the report date when the source did not provide one.
func (e EarningsEvent) EventYear() int {
	if e.FiscalYear != 0 {
		return e.FiscalYear
	}
	return e.Date.Year()
}

// Key is the deduplication identity: same ticker, fiscal year and quarter
// always map to the same key regardless of the other fields.
func (e EarningsEvent) Key() string {
	return fmt.Sprintf("%s|%d|%d", strings.ToUpper(e.Ticker), e.EventYear(), e.Quarter)
}

// UID derives the stable calendar entry identifier for this event.
func (e EarningsEvent) UID(relcalid string) string {
	return deriveUID(relcalid,
		"earnings",
		strings.ToLower(e.Ticker),
		strconv.Itoa(e.EventYear()),
		strconv.Itoa(e.Quarter),
	)
}

// Title builds the calendar entry summary.
func (e EarningsEvent) Title() string {
	return fmt.Sprintf("%s Q%d Earnings", e.Ticker, e.Quarter)
}

// Description builds the multi-line details block for the calendar entry.
func (e EarningsEvent) Description() string {
	eps := "-"
	if e.EPSEstimate != nil {
		eps = strconv.FormatFloat(*e.EPSEstimate, 'f', -1, 64)
	}
	source := e.Source
	if source == "" {
		source = "-"
	}
	lines := []string{
		"Ticker: " + e.Ticker,
		fmt.Sprintf("Fiscal Qtr: %d", e.Quarter),
		"Estimate EPS: " + eps,
		"Est. Revenue: " + FormatRevenue(e.RevenueEstimate),
		"Source: " + source,
	}
	return strings.Join(lines, "\n")
}

// ContentEquals reports whether two events carry the same payload. Identity
// fields are excluded; UpdatedAt is bookkeeping, not content.
func (e EarningsEvent) ContentEquals(other EarningsEvent) bool {
	return e.Date.Equal(other.Date) &&
		floatPtrEqual(e.EPSEstimate, other.EPSEstimate) &&
		floatPtrEqual(e.RevenueEstimate, other.RevenueEstimate) &&
		e.Source == other.Source
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FormatRevenue renders a revenue figure as a compact human-readable string
// ("12 K", "1.5 M", "3.00 B"). Nil and negative values render as "-".
func FormatRevenue(value *float64) string {
	if value == nil {
		return "-"
	}
	n := *value
	if n < 0 {
		return "-"
	}
	n = math.RoundToEven(n)
	switch {
	case n < 1_000:
		return strconv.FormatFloat(n, 'f', 0, 64)
	case n < 1_000_000:
		return fmt.Sprintf("%.0f K", n/1_000)
	case n < 1_000_000_000:
		return fmt.Sprintf("%.1f M", n/1_000_000)
	case n < 1_000_000_000_000:
		return fmt.Sprintf("%.2f B", n/1_000_000_000)
	default:
		return fmt.Sprintf("%.2f T", n/1_000_000_000_000)
	}
}
