// Package audit records authentication events (registrations, logins,
// denied access) in the audit_logs table for later review.
//
// Writes happen asynchronously: the API layer queues events on a
// bounded channel and a single drain goroutine persists them, so audit
// I/O never sits on the request path. Entries are queried newest first
// with optional action/user filters and clamped pagination.
package audit
