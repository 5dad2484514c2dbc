package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rickgao/tech-calendar/internal/model"
)

// EarningsRepo persists earnings event snapshots keyed by
// (ticker, fiscal year, quarter).
type EarningsRepo struct {
	store *Store
}

const earningsColumns = `ticker, fiscal_year, quarter, event_date,
	eps_estimate, revenue_estimate, source, updated_at`

// Get returns the stored snapshot for the identity, if any.
func (r *EarningsRepo) Get(ctx context.Context, ticker string, fiscalYear, quarter int) (model.EarningsEvent, bool, error) {
	row := r.store.db.QueryRowContext(ctx,
		`SELECT `+earningsColumns+` FROM earnings
		 WHERE ticker = ? AND fiscal_year = ? AND quarter = ?`,
		ticker, fiscalYear, quarter)

	ev, err := scanEarnings(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EarningsEvent{}, false, nil
	}
	if err != nil {
		return model.EarningsEvent{}, false, storageErr("get earnings event", err)
	}
	return ev, true, nil
}

// Upsert inserts the event if absent, replaces the snapshot when content
// changed, and is a no-op when the stored snapshot is identical. Returns
// whether a write happened.
func (r *EarningsRepo) Upsert(ctx context.Context, ev model.EarningsEvent) (bool, error) {
	existing, found, err := r.Get(ctx, ev.Ticker, ev.EventYear(), ev.Quarter)
	if err != nil {
		return false, err
	}
	if found && existing.ContentEquals(ev) {
		return false, nil
	}

	now := r.store.now().Format(time.RFC3339)
	_, err = r.store.db.ExecContext(ctx,
		`INSERT INTO earnings (
			ticker, fiscal_year, quarter, event_date,
			eps_estimate, revenue_estimate, source, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker, fiscal_year, quarter) DO UPDATE SET
			event_date = excluded.event_date,
			eps_estimate = excluded.eps_estimate,
			revenue_estimate = excluded.revenue_estimate,
			source = excluded.source,
			updated_at = excluded.updated_at`,
		ev.Ticker, ev.EventYear(), ev.Quarter, model.FormatDate(ev.Date),
		nullFloat(ev.EPSEstimate), nullFloat(ev.RevenueEstimate),
		nullString(ev.Source), now, now)
	if err != nil {
		return false, storageErr("upsert earnings event", err)
	}
	return true, nil
}

// ListWindow returns stored events whose date falls inside the inclusive
// [start, end] range, ascending by date with ties broken by identity.
func (r *EarningsRepo) ListWindow(ctx context.Context, start, end time.Time) ([]model.EarningsEvent, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+earningsColumns+` FROM earnings
		 WHERE event_date >= ? AND event_date <= ?
		 ORDER BY event_date, ticker, quarter`,
		model.FormatDate(start), model.FormatDate(end))
	if err != nil {
		return nil, storageErr("list earnings events", err)
	}
	defer rows.Close()

	var events []model.EarningsEvent
	for rows.Next() {
		ev, err := scanEarnings(rows)
		if err != nil {
			return nil, storageErr("scan earnings event", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list earnings events", err)
	}
	return events, nil
}

// DeleteOlderThan prunes events dated strictly before the cutoff.
func (r *EarningsRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.store.db.ExecContext(ctx,
		`DELETE FROM earnings WHERE event_date < ?`, model.FormatDate(cutoff))
	if err != nil {
		return 0, storageErr("prune earnings events", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("prune earnings events", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEarnings(row rowScanner) (model.EarningsEvent, error) {
	var (
		ev        model.EarningsEvent
		date      string
		eps, rev  sql.NullFloat64
		source    sql.NullString
		updatedAt string
	)
	err := row.Scan(&ev.Ticker, &ev.FiscalYear, &ev.Quarter, &date,
		&eps, &rev, &source, &updatedAt)
	if err != nil {
		return model.EarningsEvent{}, err
	}

	if ev.Date, err = model.ParseDate(date); err != nil {
		return model.EarningsEvent{}, err
	}
	if eps.Valid {
		v := eps.Float64
		ev.EPSEstimate = &v
	}
	if rev.Valid {
		v := rev.Float64
		ev.RevenueEstimate = &v
	}
	ev.Source = source.String
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		ev.UpdatedAt = t
	}
	return ev, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
