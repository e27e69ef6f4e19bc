package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"dvdenrich/internal/catalog"
	"dvdenrich/internal/config"
	"dvdenrich/internal/services"
	"dvdenrich/internal/testsupport"
)

func seedRows(n int) []testsupport.Row {
	rows := make([]testsupport.Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, testsupport.Row{Key: int64(i), Title: fmt.Sprintf("Film %02d", i), Year: 1970 + i})
	}
	return rows
}

func keys(records []catalog.Record) []int64 {
	out := make([]int64, len(records))
	for i, rec := range records {
		out[i] = rec.Key
	}
	return out
}

func TestFetchRecordsAllInKeyOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustCreateCatalog(t, cfg,
		testsupport.Row{Key: 30, Title: "Alien", Year: 1979},
		testsupport.Row{Key: 10, Title: "Heat", Year: 1995, Director: "Michael Mann"},
		testsupport.Row{Key: 20, Title: "Untitled"},
	)
	store := testsupport.MustOpenStore(t, cfg)

	records, err := store.FetchRecords(context.Background(), catalog.All())
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := []catalog.Record{
		{Key: 10, Title: "Heat", Year: "1995", Director: "Michael Mann"},
		{Key: 20, Title: "Untitled"},
		{Key: 30, Title: "Alien", Year: "1979"},
	}
	for i := range want {
		if records[i] != want[i] {
			t.Fatalf("record %d = %#v, want %#v", i, records[i], want[i])
		}
	}
}

func TestFetchRecordsLimitAndOffset(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustCreateCatalog(t, cfg, seedRows(20)...)
	store := testsupport.MustOpenStore(t, cfg)

	records, err := store.FetchRecords(context.Background(), catalog.Page{Limit: 5, Offset: 10})
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	got := keys(records)
	want := []int64{11, 12, 13, 14, 15}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
}

func TestFetchRecordsOffsetWithoutLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustCreateCatalog(t, cfg, seedRows(6)...)
	store := testsupport.MustOpenStore(t, cfg)

	records, err := store.FetchRecords(context.Background(), catalog.Page{Limit: catalog.Unbounded, Offset: 4})
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if got := fmt.Sprint(keys(records)); got != "[5 6]" {
		t.Fatalf("keys = %s", got)
	}
}

func TestFetchRecordsZeroLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustCreateCatalog(t, cfg, seedRows(3)...)
	store := testsupport.MustOpenStore(t, cfg)

	records, err := store.FetchRecords(context.Background(), catalog.Page{Limit: 0})
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestUpdateDirector(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustCreateCatalog(t, cfg,
		testsupport.Row{Key: 1, Title: "Alien", Year: 1979},
		testsupport.Row{Key: 2, Title: "Heat", Year: 1995},
	)
	store := testsupport.MustOpenStore(t, cfg)

	if err := store.UpdateDirector(context.Background(), 1, "Ridley Scott"); err != nil {
		t.Fatalf("UpdateDirector: %v", err)
	}
	if got, ok := testsupport.Director(t, cfg, 1); !ok || got != "Ridley Scott" {
		t.Fatalf("director = (%q, %v)", got, ok)
	}
	if _, ok := testsupport.Director(t, cfg, 2); ok {
		t.Fatal("row 2 must stay NULL")
	}
}

func TestCustomTableName(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTable("films"))
	testsupport.MustCreateCatalog(t, cfg, testsupport.Row{Key: 1, Title: "Alien"})
	store := testsupport.MustOpenStore(t, cfg)

	records, err := store.FetchRecords(context.Background(), catalog.All())
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Alien" {
		t.Fatalf("unexpected records %#v", records)
	}
}

func TestFetchRecordsMissingTable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustCreateCatalog(t, cfg)
	cfg.Database.Table = "missing"
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.FetchRecords(context.Background(), catalog.All()); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestOpenMissingSQLiteFileIsConnectionError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Database.Name = filepath.Join(t.TempDir(), "absent.db")

	_, err := catalog.Open(context.Background(), cfg)
	if !errors.Is(err, services.ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if services.ExitCode(err) != services.ExitSetup {
		t.Fatalf("exit code = %d", services.ExitCode(err))
	}
}

func TestOpenUnreachableMySQLIsConnectionError(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = config.DriverMySQL
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1
	cfg.Database.User = "dvds"
	cfg.Database.Name = "dvds"

	_, err := catalog.Open(context.Background(), &cfg)
	if !errors.Is(err, services.ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := catalog.Open(context.Background(), cfg)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewSQLStoreValidatesArguments(t *testing.T) {
	if _, err := catalog.NewSQLStore(nil, config.DriverSQLite, "dvds"); err == nil {
		t.Fatal("expected error for nil handle")
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := catalog.NewSQLStore(db, config.DriverSQLite, "dvds; DROP TABLE dvds"); err == nil {
		t.Fatal("expected error for invalid table")
	}
	if _, err := catalog.NewSQLStore(db, config.DriverPostgres, "dvds"); err == nil {
		t.Fatal("expected error for non database/sql driver")
	}
	if _, err := catalog.NewSQLStore(db, config.DriverMySQL, "dvds"); err != nil {
		t.Fatalf("NewSQLStore mysql: %v", err)
	}
}
