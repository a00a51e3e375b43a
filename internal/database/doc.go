// Package database implements the domain repositories on PostgreSQL via
// pgx. All mutable state lives here; requests share nothing in-process.
package database
