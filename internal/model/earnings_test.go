package model

import (
	"strings"
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func TestFormatRevenue(t *testing.T) {
	tests := []struct {
		name  string
		input *float64
		want  string
	}{
		{"nil", nil, "-"},
		{"zero", f64(0), "0"},
		{"fraction", f64(0.5), "0"},
		{"fraction-neg", f64(-0.5), "-"},
		{"one", f64(1), "1"},
		{"less-than-k", f64(999), "999"},
		{"k", f64(1_000), "1 K"},
		{"k-rounded-down", f64(12_345), "12 K"},
		{"m", f64(1_000_000), "1.0 M"},
		{"m-1-dec", f64(1_500_000), "1.5 M"},
		{"b", f64(3_000_000_000), "3.00 B"},
		{"b-neg", f64(-2_000_000_000), "-"},
		{"t", f64(1_000_000_000_000), "1.00 T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRevenue(tt.input); got != tt.want {
				t.Errorf("FormatRevenue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEarningsEventUIDStable(t *testing.T) {
	a := EarningsEvent{
		Ticker:      "AAPL",
		Date:        NewDate(2024, time.July, 25),
		Quarter:     3,
		FiscalYear:  2024,
		EPSEstimate: f64(1.35),
	}
	b := EarningsEvent{
		Ticker:          "AAPL",
		Date:            NewDate(2024, time.July, 26), // date moved
		Quarter:         3,
		FiscalYear:      2024,
		RevenueEstimate: f64(84_500_000_000), // estimates changed
		Source:          "Finnhub",
	}

	if a.UID("tech.calendar.earnings") != b.UID("tech.calendar.earnings") {
		t.Error("UID changed for the same (ticker, fiscal year, quarter)")
	}
	if a.Key() != b.Key() {
		t.Errorf("Key mismatch: %q vs %q", a.Key(), b.Key())
	}
	if a.UID("tech.calendar.earnings") == a.UID("other.relcalid") {
		t.Error("UID should depend on the calendar relcalid")
	}
	if !strings.HasSuffix(a.UID("tech.calendar.earnings"), "@tech.calendar.earnings") {
		t.Errorf("UID = %q, want relcalid suffix", a.UID("tech.calendar.earnings"))
	}
}

func TestEarningsEventUIDDiffersAcrossIdentity(t *testing.T) {
	base := EarningsEvent{Ticker: "MSFT", Date: NewDate(2024, time.January, 30), Quarter: 2, FiscalYear: 2024}

	q3 := base
	q3.Quarter = 3
	nextYear := base
	nextYear.FiscalYear = 2025
	otherTicker := base
	otherTicker.Ticker = "GOOG"

	uid := base.UID("cal")
	for name, ev := range map[string]EarningsEvent{
		"quarter": q3, "fiscal-year": nextYear, "ticker": otherTicker,
	} {
		if ev.UID("cal") == uid {
			t.Errorf("UID unchanged when %s differs", name)
		}
	}
}

func TestEventYearFallback(t *testing.T) {
	e := EarningsEvent{Ticker: "NVDA", Date: NewDate(2025, time.February, 20), Quarter: 4}
	if got := e.EventYear(); got != 2025 {
		t.Errorf("EventYear = %d, want calendar-year fallback 2025", got)
	}
	e.FiscalYear = 2026
	if got := e.EventYear(); got != 2026 {
		t.Errorf("EventYear = %d, want fiscal year 2026", got)
	}
}

func TestEarningsEventDescription(t *testing.T) {
	e := EarningsEvent{
		Ticker:          "AAPL",
		Date:            NewDate(2024, time.July, 25),
		Quarter:         3,
		FiscalYear:      2024,
		EPSEstimate:     f64(1.35),
		RevenueEstimate: f64(84_500_000_000),
		Source:          "Finnhub",
	}
	want := "Ticker: AAPL\nFiscal Qtr: 3\nEstimate EPS: 1.35\nEst. Revenue: 84.50 B\nSource: Finnhub"
	if got := e.Description(); got != want {
		t.Errorf("Description =\n%q\nwant\n%q", got, want)
	}

	bare := EarningsEvent{Ticker: "AMD", Date: NewDate(2024, time.April, 30), Quarter: 1}
	want = "Ticker: AMD\nFiscal Qtr: 1\nEstimate EPS: -\nEst. Revenue: -\nSource: -"
	if got := bare.Description(); got != want {
		t.Errorf("Description =\n%q\nwant\n%q", got, want)
	}
}

func TestContentEquals(t *testing.T) {
	a := EarningsEvent{Ticker: "AAPL", Date: NewDate(2024, time.July, 25), Quarter: 3, FiscalYear: 2024, EPSEstimate: f64(1.35)}
	b := a
	if !a.ContentEquals(b) {
		t.Error("identical events reported unequal")
	}
	b.EPSEstimate = f64(1.40)
	if a.ContentEquals(b) {
		t.Error("changed estimate reported equal")
	}
	c := a
	c.UpdatedAt = time.Now()
	if !a.ContentEquals(c) {
		t.Error("UpdatedAt should not affect content equality")
	}
}
