package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rickgao/tech-calendar/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "techcal.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func f64(v float64) *float64 { return &v }

func testEvent() model.EarningsEvent {
	return model.EarningsEvent{
		Ticker:      "AAPL",
		Date:        model.NewDate(2024, time.July, 25),
		Quarter:     3,
		FiscalYear:  2024,
		EPSEstimate: f64(1.35),
		Source:      "Finnhub",
	}
}

func TestUpsertInsertsAndGets(t *testing.T) {
	s := openTestStore(t)
	repo := s.Earnings()
	ctx := context.Background()

	wrote, err := repo.Upsert(ctx, testEvent())
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !wrote {
		t.Error("first Upsert reported no write")
	}

	got, found, err := repo.Get(ctx, "AAPL", 2024, 3)
	if err != nil || !found {
		t.Fatalf("Get = found=%t err=%v", found, err)
	}
	if !got.ContentEquals(testEvent()) {
		t.Errorf("stored event = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not recorded")
	}

	_, found, err = repo.Get(ctx, "MSFT", 2024, 3)
	if err != nil || found {
		t.Errorf("Get missing key = found=%t err=%v", found, err)
	}
}

func TestUpsertIdenticalIsNoOp(t *testing.T) {
	s := openTestStore(t)
	repo := s.Earnings()
	ctx := context.Background()

	base := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if _, err := repo.Upsert(ctx, testEvent()); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// A later run with identical content must not bump updated_at.
	s.now = func() time.Time { return base.Add(24 * time.Hour) }
	wrote, err := repo.Upsert(ctx, testEvent())
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if wrote {
		t.Error("identical Upsert reported a write")
	}

	got, _, err := repo.Get(ctx, "AAPL", 2024, 3)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.UpdatedAt.Equal(base) {
		t.Errorf("UpdatedAt = %v, want original %v", got.UpdatedAt, base)
	}
}

func TestUpsertReplacesChangedContent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Earnings()
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, testEvent()); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	changed := testEvent()
	changed.Date = model.NewDate(2024, time.July, 26)
	changed.EPSEstimate = f64(1.40)
	wrote, err := repo.Upsert(ctx, changed)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !wrote {
		t.Error("changed Upsert reported no write")
	}

	got, _, err := repo.Get(ctx, "AAPL", 2024, 3)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Date.Equal(changed.Date) || *got.EPSEstimate != 1.40 {
		t.Errorf("snapshot not replaced: %+v", got)
	}

	// Still exactly one row for the identity.
	events, err := repo.ListWindow(ctx, model.NewDate(2024, time.January, 1), model.NewDate(2024, time.December, 31))
	if err != nil {
		t.Fatalf("ListWindow failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("rows for identity = %d, want 1", len(events))
	}
}

func TestListWindowBoundsAndOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.Earnings()
	ctx := context.Background()

	add := func(ticker string, d time.Time, q int) {
		t.Helper()
		ev := model.EarningsEvent{Ticker: ticker, Date: d, Quarter: q, FiscalYear: 2024}
		if _, err := repo.Upsert(ctx, ev); err != nil {
			t.Fatalf("Upsert %s: %v", ticker, err)
		}
	}
	add("NVDA", model.NewDate(2024, time.June, 4), 2)
	add("AAPL", model.NewDate(2024, time.June, 5), 2)  // window start
	add("MSFT", model.NewDate(2024, time.June, 20), 2) // mid-window
	add("AMD", model.NewDate(2024, time.June, 20), 2)  // same date, id tiebreak
	add("GOOG", model.NewDate(2024, time.July, 5), 2)  // window end
	add("META", model.NewDate(2024, time.July, 6), 2)

	events, err := repo.ListWindow(ctx, model.NewDate(2024, time.June, 5), model.NewDate(2024, time.July, 5))
	if err != nil {
		t.Fatalf("ListWindow failed: %v", err)
	}

	var got []string
	for _, ev := range events {
		got = append(got, ev.Ticker)
	}
	want := []string{"AAPL", "AMD", "MSFT", "GOOG"}
	if len(got) != len(want) {
		t.Fatalf("tickers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tickers = %v, want %v", got, want)
		}
	}
}

func TestDeleteOlderThan(t *testing.T) {
	s := openTestStore(t)
	repo := s.Earnings()
	ctx := context.Background()

	old := model.EarningsEvent{Ticker: "IBM", Date: model.NewDate(2019, time.June, 10), Quarter: 2, FiscalYear: 2019}
	kept := model.EarningsEvent{Ticker: "IBM", Date: model.NewDate(2019, time.June, 15), Quarter: 3, FiscalYear: 2019}
	for _, ev := range []model.EarningsEvent{old, kept} {
		if _, err := repo.Upsert(ctx, ev); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	n, err := repo.DeleteOlderThan(ctx, model.NewDate(2019, time.June, 15))
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned = %d, want 1", n)
	}

	if _, found, _ := repo.Get(ctx, "IBM", 2019, 2); found {
		t.Error("event before cutoff still stored")
	}
	if _, found, _ := repo.Get(ctx, "IBM", 2019, 3); !found {
		t.Error("event on cutoff date was pruned")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "techcal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
