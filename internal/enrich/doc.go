// Package enrich drives the director backfill over the catalogue.
//
// Runner reads the selected rows once, then walks them strictly in key order
// on a single goroutine: rows that already carry a director are skipped unless
// forced, the rest are resolved and, outside dry-run mode, written back one
// auto-committed update at a time. A fixed pause follows every row. A failed
// lookup or update only affects its own row; the run reports per-row outcomes
// in a Summary.
package enrich
