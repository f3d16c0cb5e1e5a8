// Package services defines shared utilities consumed by the catalog,
// metadata client, and decision logic.
//
// Key responsibilities:
//   - Context helpers that stamp series IDs and correlation identifiers for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (validation vs not-found vs external) consistent.
//
// Use these helpers when wiring new logic so error handling and observability
// stay uniform across the system.
package services
