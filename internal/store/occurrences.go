package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rickgao/tech-calendar/internal/model"
)

// OccurrenceRepo persists annual event occurrences keyed by (series, year).
type OccurrenceRepo struct {
	store *Store
}

const occurrenceColumns = `series_id, year, start_date, end_date, location,
	timezone, confident, confirmed, announcement_url, included, updated_at`

// Get returns the stored occurrence for the identity, if any.
func (r *OccurrenceRepo) Get(ctx context.Context, seriesID string, year int) (model.Occurrence, bool, error) {
	row := r.store.db.QueryRowContext(ctx,
		`SELECT `+occurrenceColumns+` FROM occurrences
		 WHERE series_id = ? AND year = ?`,
		seriesID, year)

	occ, err := scanOccurrence(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Occurrence{}, false, nil
	}
	if err != nil {
		return model.Occurrence{}, false, storageErr("get occurrence", err)
	}
	return occ, true, nil
}

// Upsert inserts or replaces the occurrence snapshot; identical content is
// a no-op. Returns whether a write happened.
func (r *OccurrenceRepo) Upsert(ctx context.Context, occ model.Occurrence) (bool, error) {
	existing, found, err := r.Get(ctx, occ.SeriesID, occ.Year)
	if err != nil {
		return false, err
	}
	if found && existing.ContentEquals(occ) {
		return false, nil
	}

	now := r.store.now().Format(time.RFC3339)
	_, err = r.store.db.ExecContext(ctx,
		`INSERT INTO occurrences (
			series_id, year, start_date, end_date, location, timezone,
			confident, confirmed, announcement_url, included, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(series_id, year) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			location = excluded.location,
			timezone = excluded.timezone,
			confident = excluded.confident,
			confirmed = excluded.confirmed,
			announcement_url = excluded.announcement_url,
			included = excluded.included,
			updated_at = excluded.updated_at`,
		occ.SeriesID, occ.Year, nullDate(occ.StartDate), nullDate(occ.EndDate),
		nullString(occ.Location), nullString(occ.Timezone),
		boolInt(occ.Confident), boolInt(occ.Confirmed),
		nullString(occ.AnnouncementURL), boolInt(occ.Included), now, now)
	if err != nil {
		return false, storageErr("upsert occurrence", err)
	}
	return true, nil
}

// ListWindow returns included occurrences with an announced start date
// inside the inclusive [start, end] range, ascending by date with ties
// broken by identity.
func (r *OccurrenceRepo) ListWindow(ctx context.Context, start, end time.Time) ([]model.Occurrence, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+occurrenceColumns+` FROM occurrences
		 WHERE included = 1 AND start_date IS NOT NULL
		   AND start_date >= ? AND start_date <= ?
		 ORDER BY start_date, series_id, year`,
		model.FormatDate(start), model.FormatDate(end))
	if err != nil {
		return nil, storageErr("list occurrences", err)
	}
	defer rows.Close()

	var occurrences []model.Occurrence
	for rows.Next() {
		occ, err := scanOccurrence(rows)
		if err != nil {
			return nil, storageErr("scan occurrence", err)
		}
		occurrences = append(occurrences, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list occurrences", err)
	}
	return occurrences, nil
}

// DeleteOlderThan prunes occurrences that ended strictly before the cutoff.
// Undated occurrences are pruned once their target year precedes the
// cutoff's year.
func (r *OccurrenceRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.store.db.ExecContext(ctx,
		`DELETE FROM occurrences
		 WHERE (end_date IS NOT NULL AND end_date < ?)
		    OR (end_date IS NULL AND start_date IS NOT NULL AND start_date < ?)
		    OR (start_date IS NULL AND year < ?)`,
		model.FormatDate(cutoff), model.FormatDate(cutoff), cutoff.Year())
	if err != nil {
		return 0, storageErr("prune occurrences", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("prune occurrences", err)
	}
	return n, nil
}

func scanOccurrence(row rowScanner) (model.Occurrence, error) {
	var (
		occ                  model.Occurrence
		startDate, endDate   sql.NullString
		location, tz         sql.NullString
		announcement         sql.NullString
		confident, confirmed int
		included             int
		updatedAt            string
	)
	err := row.Scan(&occ.SeriesID, &occ.Year, &startDate, &endDate,
		&location, &tz, &confident, &confirmed, &announcement, &included, &updatedAt)
	if err != nil {
		return model.Occurrence{}, err
	}

	if startDate.Valid {
		if occ.StartDate, err = model.ParseDate(startDate.String); err != nil {
			return model.Occurrence{}, err
		}
	}
	if endDate.Valid {
		if occ.EndDate, err = model.ParseDate(endDate.String); err != nil {
			return model.Occurrence{}, err
		}
	}
	occ.Location = location.String
	occ.Timezone = tz.String
	occ.AnnouncementURL = announcement.String
	occ.Confident = confident != 0
	occ.Confirmed = confirmed != 0
	occ.Included = included != 0
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		occ.UpdatedAt = t
	}
	return occ, nil
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: model.FormatDate(t), Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
