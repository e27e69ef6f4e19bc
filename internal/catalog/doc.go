// Package catalog reads and updates the DVD catalogue table.
//
// Two operations are exposed through Store: an ordered, optionally paged read
// of every record and a single-column director update committed on its own.
// MySQL and SQLite share a database/sql implementation that differs only in
// dialect; Postgres goes through a single pgx connection. Open picks the
// backend from the configured driver.
package catalog
