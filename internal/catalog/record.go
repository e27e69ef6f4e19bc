package catalog

import (
	"context"
	"regexp"
)

// Record is one row of the catalogue table. NULL columns read as empty
// strings.
type Record struct {
	Key      int64
	Title    string
	Year     string
	Director string
}

// Unbounded is the Page limit that disables the row cap.
const Unbounded = -1

// Page restricts a read to a window of rows in key order. A negative Limit
// returns every row after Offset.
type Page struct {
	Limit  int
	Offset int
}

// All returns a Page covering the whole table.
func All() Page {
	return Page{Limit: Unbounded}
}

func (p Page) bounded() bool { return p.Limit >= 0 }

// Store is the persistence surface used by the enrichment loop.
type Store interface {
	FetchRecords(ctx context.Context, page Page) ([]Record, error)
	UpdateDirector(ctx context.Context, key int64, director string) error
	Close() error
}

var validTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
