// Package sqlite provides durable storage for notebooks, sources and
// chunks on a single SQLite database file. Schema changes ship as
// embedded, numbered migrations applied on open.
package sqlite
