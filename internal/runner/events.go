package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/tech-calendar/internal/config"
	"github.com/rickgao/tech-calendar/internal/feed"
	"github.com/rickgao/tech-calendar/internal/model"
	"github.com/rickgao/tech-calendar/internal/research"
	"github.com/rickgao/tech-calendar/internal/retention"
	"github.com/rickgao/tech-calendar/internal/store"
)

// Researcher answers structured occurrence lookups for one series and year.
type Researcher interface {
	Lookup(ctx context.Context, series model.Series, year int) (research.Lookup, error)
}

// Events runs the annual tech events workflow end to end.
type Events struct {
	cfg        config.EventsConfig
	yearsAhead int
	researcher Researcher
	store      *store.Store
	logger     *slog.Logger

	today func() time.Time
}

// NewEvents creates the events workflow runner. yearsAhead controls how many
// future years beyond the current one are researched per series.
func NewEvents(cfg config.EventsConfig, yearsAhead int, researcher Researcher, st *store.Store, logger *slog.Logger) *Events {
	if logger == nil {
		logger = slog.Default()
	}
	return &Events{
		cfg:        cfg,
		yearsAhead: yearsAhead,
		researcher: researcher,
		store:      st,
		logger:     logger,
		today:      func() time.Time { return model.TruncateToDate(time.Now()) },
	}
}

// Run researches every configured series for the current and upcoming years,
// reconciles the store and rewrites the events feed. Failed lookups are
// skipped; the run fails only when every lookup failed or when storage or
// output broke.
func (r *Events) Run(ctx context.Context) error {
	today := r.today()
	policy := retention.Policy{
		RetentionYears: r.cfg.Calendar.RetentionYears,
		DaysAhead:      r.cfg.DaysAhead,
		DaysPast:       r.cfg.DaysPast,
	}
	from, to := policy.DisplayWindow(today)

	repo := r.store.Occurrences()

	attempted, failed, wrote := 0, 0, 0
	for _, sc := range r.cfg.Series {
		series := model.Series{ID: sc.ID, Name: sc.Name, Queries: sc.Queries}

		for year := today.Year(); year <= today.Year()+r.yearsAhead; year++ {
			attempted++

			lookup, err := r.researcher.Lookup(ctx, series, year)
			if err != nil {
				failed++
				r.logger.Warn("research lookup failed, skipping occurrence",
					"series_id", series.ID,
					"year", year,
					"error", err,
				)
				continue
			}

			stored, found, err := repo.Get(ctx, series.ID, year)
			if err != nil {
				return fmt.Errorf("load occurrence %s %d: %w", series.ID, year, err)
			}

			merged, skip := mergeOccurrence(series, year, lookup, stored, found, today)
			if skip {
				continue
			}

			changed, err := repo.Upsert(ctx, merged)
			if err != nil {
				return fmt.Errorf("upsert occurrence %s: %w", merged.Key(), err)
			}
			if changed {
				wrote++
			}
		}
	}

	if attempted > 0 && failed == attempted {
		return fmt.Errorf("research events: all %d lookups failed", failed)
	}

	pruned, err := repo.DeleteOlderThan(ctx, policy.RetentionCutoff(today))
	if err != nil {
		return fmt.Errorf("prune occurrences: %w", err)
	}

	listed, err := repo.ListWindow(ctx, from, to)
	if err != nil {
		return fmt.Errorf("list occurrences window: %w", err)
	}

	names := make(map[string]string, len(r.cfg.Series))
	for _, sc := range r.cfg.Series {
		names[sc.ID] = sc.Name
	}

	entries := make([]feed.Entry, 0, len(listed))
	for _, occ := range listed {
		occ.SeriesName = names[occ.SeriesID]
		if occ.SeriesName == "" {
			// Series removed from configuration; its stored rows still
			// publish until retention drops them.
			occ.SeriesName = occ.SeriesID
		}
		entries = append(entries, feed.Entry{
			UID:         occ.UID(r.cfg.Calendar.RelCalID),
			Summary:     occ.Title(),
			Description: occ.Description(),
			Start:       occ.StartDate,
			End:         occ.EndDate,
			UpdatedAt:   occ.UpdatedAt,
		})
	}

	if err := writeFeed(r.cfg.Calendar, entries); err != nil {
		return err
	}

	r.logger.Info("events run complete",
		"series", len(r.cfg.Series),
		"lookups", attempted,
		"failed_lookups", failed,
		"written", wrote,
		"pruned", pruned,
		"published", len(entries),
		"ics_path", r.cfg.Calendar.ICSPath,
	)
	return nil
}

// mergeOccurrence reconciles a fresh lookup with the stored occurrence.
// Lookup fields win when set; stored fields backfill gaps. Confirmed and
// Included are sticky: once an official announcement was recorded the
// occurrence never silently drops out of the feed again. When both the
// lookup and the stored occurrence are already in the past, the stored one
// is authoritative and the write is skipped.
func mergeOccurrence(series model.Series, year int, lookup research.Lookup, stored model.Occurrence, found bool, today time.Time) (model.Occurrence, bool) {
	merged := model.Occurrence{
		SeriesID:        series.ID,
		SeriesName:      series.Name,
		Year:            year,
		StartDate:       lookup.StartDate,
		EndDate:         lookup.EndDate,
		Location:        lookup.Location,
		Timezone:        lookup.Timezone,
		AnnouncementURL: lookup.AnnouncementURL,
		Confident:       lookup.Confident,
		Confirmed:       lookup.Confirmed,
	}

	if found {
		if merged.IsPast(today) && stored.IsPast(today) {
			return model.Occurrence{}, true
		}
		if merged.StartDate.IsZero() {
			merged.StartDate = stored.StartDate
			merged.EndDate = stored.EndDate
		}
		if merged.Location == "" {
			merged.Location = stored.Location
		}
		if merged.Timezone == "" {
			merged.Timezone = stored.Timezone
		}
		if merged.AnnouncementURL == "" {
			merged.AnnouncementURL = stored.AnnouncementURL
		}
		merged.Confirmed = merged.Confirmed || stored.Confirmed
	}

	merged.Included = merged.Confident || merged.Confirmed
	if found && stored.Included {
		merged.Included = true
	}

	return merged, false
}
