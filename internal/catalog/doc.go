// Package catalog persists tracked series, seasons, episodes, and episode
// files in SQLite.
//
// The Store manages database connections, schema initialization, and the
// lookup surface the decision logic depends on: episode retrieval by id, by
// series, by season, and by the (series, season, episode) natural key, plus
// transactional bulk insert/update used by reconciliation. Season records are
// created idempotently via EnsureSeason so episode merges never race schema
// bookkeeping.
//
// Treat this package as the single source of truth for catalog semantics; when
// you add new columns, update schema.sql and bump schemaVersion.
package catalog
