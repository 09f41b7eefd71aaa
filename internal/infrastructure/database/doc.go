// Package database manages the SQLite connection and schema migrations
// for AuthGate.
//
// It provides:
//   - Connection setup with WAL mode, busy timeout, and foreign keys
//   - An embedded-filesystem migration runner (*.up.sql / *.down.sql)
//   - Health checks and graceful close
//
// SQLite is opened with a single-writer connection pool, which matches
// its locking model and keeps the uniqueness check-and-insert on the
// users table free of write races.
package database
