package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/tech-calendar/internal/config"
	"github.com/rickgao/tech-calendar/internal/feed"
	"github.com/rickgao/tech-calendar/internal/finnhub"
	"github.com/rickgao/tech-calendar/internal/model"
	"github.com/rickgao/tech-calendar/internal/retention"
	"github.com/rickgao/tech-calendar/internal/store"
)

// EarningsFetcher fetches upcoming earnings records for one symbol.
type EarningsFetcher interface {
	EarningsCalendar(ctx context.Context, symbol string, from, to time.Time) ([]finnhub.EarningsItem, error)
}

// Earnings runs the quarterly earnings workflow end to end.
type Earnings struct {
	cfg     config.EarningsConfig
	fetcher EarningsFetcher
	store   *store.Store
	logger  *slog.Logger

	// today anchors the display window and retention cutoff; overridable
	// in tests.
	today func() time.Time
}

// NewEarnings creates the earnings workflow runner.
func NewEarnings(cfg config.EarningsConfig, fetcher EarningsFetcher, st *store.Store, logger *slog.Logger) *Earnings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Earnings{
		cfg:     cfg,
		fetcher: fetcher,
		store:   st,
		logger:  logger,
		today:   func() time.Time { return model.TruncateToDate(time.Now()) },
	}
}

// Run fetches the configured tickers, reconciles the store and rewrites the
// earnings feed. Failed tickers and invalid records are skipped; the run
// fails only when every ticker failed or when storage or output broke.
func (r *Earnings) Run(ctx context.Context) error {
	today := r.today()
	policy := retention.Policy{
		RetentionYears: r.cfg.Calendar.RetentionYears,
		DaysAhead:      r.cfg.DaysAhead,
		DaysPast:       r.cfg.DaysPast,
	}
	from, to := policy.DisplayWindow(today)

	events, failed := r.fetchAll(ctx, from, to)
	if len(r.cfg.Tickers) > 0 && failed == len(r.cfg.Tickers) {
		return fmt.Errorf("fetch earnings: all %d tickers failed", failed)
	}

	repo := r.store.Earnings()

	wrote := 0
	for _, ev := range events {
		changed, err := repo.Upsert(ctx, ev)
		if err != nil {
			return fmt.Errorf("upsert earnings %s: %w", ev.Key(), err)
		}
		if changed {
			wrote++
		}
	}

	pruned, err := repo.DeleteOlderThan(ctx, policy.RetentionCutoff(today))
	if err != nil {
		return fmt.Errorf("prune earnings: %w", err)
	}

	listed, err := repo.ListWindow(ctx, from, to)
	if err != nil {
		return fmt.Errorf("list earnings window: %w", err)
	}

	entries := make([]feed.Entry, 0, len(listed))
	for _, ev := range listed {
		entries = append(entries, feed.Entry{
			UID:         ev.UID(r.cfg.Calendar.RelCalID),
			Summary:     ev.Title(),
			Description: ev.Description(),
			Start:       ev.Date,
			Categories:  ev.Source,
			UpdatedAt:   ev.UpdatedAt,
		})
	}

	if err := writeFeed(r.cfg.Calendar, entries); err != nil {
		return err
	}

	r.logger.Info("earnings run complete",
		"tickers", len(r.cfg.Tickers),
		"failed_tickers", failed,
		"fetched", len(events),
		"written", wrote,
		"pruned", pruned,
		"published", len(entries),
		"ics_path", r.cfg.Calendar.ICSPath,
	)
	return nil
}

// fetchAll queries each ticker in turn and normalizes the records, skipping
// failed tickers, invalid records and in-batch duplicates.
func (r *Earnings) fetchAll(ctx context.Context, from, to time.Time) ([]model.EarningsEvent, int) {
	var events []model.EarningsEvent
	seen := make(map[string]bool)
	failed := 0

	for _, ticker := range r.cfg.Tickers {
		items, err := r.fetcher.EarningsCalendar(ctx, ticker, from, to)
		if err != nil {
			failed++
			r.logger.Warn("earnings fetch failed, skipping ticker",
				"ticker", ticker,
				"error", err,
			)
			continue
		}

		for _, item := range items {
			ev, err := item.ToEvent()
			if err != nil {
				var verr *model.ValidationError
				if errors.As(err, &verr) {
					r.logger.Warn("skipping invalid earnings record",
						"ticker", ticker,
						"error", err,
					)
					continue
				}
				r.logger.Warn("skipping earnings record",
					"ticker", ticker,
					"error", err,
				)
				continue
			}
			if seen[ev.Key()] {
				r.logger.Debug("skipping duplicate earnings record", "key", ev.Key())
				continue
			}
			seen[ev.Key()] = true
			events = append(events, ev)
		}
	}

	return events, failed
}

// writeFeed renders the calendar and replaces the feed file atomically.
func writeFeed(cal config.CalendarConfig, entries []feed.Entry) error {
	content, err := feed.Build(feed.Metadata{
		Name:        cal.Name,
		RelCalID:    cal.RelCalID,
		Description: cal.Description,
	}, entries)
	if err != nil {
		return fmt.Errorf("build feed %s: %w", cal.RelCalID, err)
	}
	if err := feed.WriteAtomic(cal.ICSPath, content); err != nil {
		return fmt.Errorf("write feed %s: %w", cal.ICSPath, err)
	}
	return nil
}
