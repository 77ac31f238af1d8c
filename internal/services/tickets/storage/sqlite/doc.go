// Package sqlite provides a SQLite-backed slot store.
package sqlite
