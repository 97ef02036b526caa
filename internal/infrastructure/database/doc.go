// Package database manages the SQLite connection backing the activity
// journal.
//
// The controller's code store is deliberately in-memory only; this
// database records an append-only history of what the controller did,
// not the codes themselves. If the journal is disabled in configuration
// the daemon runs without it and nothing else changes.
//
// The package provides:
//   - Connection setup with WAL mode and busy-timeout pragmas
//   - Embedded schema migrations applied at startup
//   - A health check used during daemon startup
//
// Schema files live in the top-level migrations directory and are
// embedded into the binary; the migrations package registers them with
// MigrationsFS at init time.
package database
