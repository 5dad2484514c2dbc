// Package store implements the durable deduplication store: a local SQLite
// file holding the last-known snapshot of every event the tool has seen.
//
// Invariants:
//   - At most one stored row per event identity; writes are upserts
//   - An upsert with unchanged content is a no-op and leaves updated_at
//     untouched, which keeps regenerated feeds byte-identical
//   - Storage failures are fatal to a run and surface as *StorageError
package store
