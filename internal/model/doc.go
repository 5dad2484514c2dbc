// Package model defines the canonical calendar event types shared across
// the tech-calendar workflows.
//
// Conventions:
//   - Dates: time.Time at UTC midnight, date-only semantics (all-day events)
//   - Identity: UIDs are a pure function of the immutable source fields
//     (ticker/fiscal year/quarter for earnings, series id/year for events),
//     so re-fetching the same underlying fact yields the same UID
package model
