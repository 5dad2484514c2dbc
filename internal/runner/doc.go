// Package runner wires the workflows together: fetch or research upstream
// data, normalize it, reconcile it against the deduplication store, prune
// expired rows, and publish the resulting ICS feed atomically.
//
// A run only fails outright when every upstream source failed or when
// storage or feed output breaks. Individual bad records and individual
// source failures are logged and skipped so one flaky ticker or series
// cannot block the rest of the feed.
package runner
