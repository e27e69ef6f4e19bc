package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"dvdenrich/internal/catalog"
	"dvdenrich/internal/config"
)

// Row seeds one catalogue row. A nil Year or Director is stored as NULL.
type Row struct {
	Key      int64
	Title    string
	Year     any
	Director any
}

// MustCreateCatalog creates the catalogue table in the SQLite file named by
// cfg and inserts rows.
func MustCreateCatalog(t testing.TB, cfg *config.Config, rows ...Row) {
	t.Helper()

	db := mustOpenDB(t, cfg)
	defer db.Close()

	schema := fmt.Sprintf(`CREATE TABLE %s (
		dkey INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		year INTEGER,
		director TEXT
	)`, cfg.Database.Table)
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create catalogue table: %v", err)
	}
	insert := fmt.Sprintf("INSERT INTO %s (dkey, title, year, director) VALUES (?, ?, ?, ?)", cfg.Database.Table)
	for _, row := range rows {
		if _, err := db.Exec(insert, row.Key, row.Title, row.Year, row.Director); err != nil {
			t.Fatalf("insert row %d: %v", row.Key, err)
		}
	}
}

// MustOpenStore opens the catalogue store for cfg and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) catalog.Store {
	t.Helper()

	store, err := catalog.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// Director reads the director column for key directly from the SQLite file.
// The boolean is false when the column is NULL.
func Director(t testing.TB, cfg *config.Config, key int64) (string, bool) {
	t.Helper()

	db := mustOpenDB(t, cfg)
	defer db.Close()

	var director sql.NullString
	query := fmt.Sprintf("SELECT director FROM %s WHERE dkey = ?", cfg.Database.Table)
	if err := db.QueryRow(query, key).Scan(&director); err != nil {
		t.Fatalf("read director %d: %v", key, err)
	}
	return director.String, director.Valid
}

func mustOpenDB(t testing.TB, cfg *config.Config) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", cfg.Database.Name)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}
