package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"dvdenrich/internal/config"
)

// dialect captures the SQL differences between the database/sql backends.
type dialect struct {
	name string
	// unboundedLimit is the LIMIT clause used when only an offset is given.
	unboundedLimit string
}

var (
	mysqlDialect  = dialect{name: config.DriverMySQL, unboundedLimit: "LIMIT 18446744073709551615"}
	sqliteDialect = dialect{name: config.DriverSQLite, unboundedLimit: "LIMIT -1"}
)

// SQLStore implements Store over database/sql for MySQL and SQLite.
type SQLStore struct {
	db      *sql.DB
	table   string
	dialect dialect
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an open database handle. driver selects the SQL dialect
// and must be config.DriverMySQL or config.DriverSQLite.
func NewSQLStore(db *sql.DB, driver, table string) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	var d dialect
	switch driver {
	case config.DriverMySQL:
		d = mysqlDialect
	case config.DriverSQLite:
		d = sqliteDialect
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLStore{db: db, table: table, dialect: d}, nil
}

// mysqlConfig maps the database section onto a driver configuration.
func mysqlConfig(cfg config.Database) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	if cfg.Charset != "" {
		mc.Params = map[string]string{"charset": cfg.Charset}
	}
	return mc
}

func openMySQL(ctx context.Context, cfg config.Database) (Store, error) {
	mc := mysqlConfig(cfg)
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, connectionError("open", fmt.Errorf("mysql connector: %w", err))
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, connectionError("open", fmt.Errorf("connect mysql %s: %w", mc.Addr, err))
	}
	store, err := NewSQLStore(db, config.DriverMySQL, cfg.Table)
	if err != nil {
		_ = db.Close()
		return nil, connectionError("open", err)
	}
	return store, nil
}

func openSQLite(ctx context.Context, cfg config.Database) (Store, error) {
	path := cfg.Name
	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return nil, connectionError("open", fmt.Errorf("sqlite database %s: %w", path, err))
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, connectionError("open", fmt.Errorf("open sqlite db: %w", err))
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, connectionError("open", fmt.Errorf("apply pragma: %w", err))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, connectionError("open", fmt.Errorf("connect sqlite %s: %w", path, err))
	}
	store, err := NewSQLStore(db, config.DriverSQLite, cfg.Table)
	if err != nil {
		_ = db.Close()
		return nil, connectionError("open", err)
	}
	return store, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FetchRecords returns the rows selected by page in ascending key order.
func (s *SQLStore) FetchRecords(ctx context.Context, page Page) ([]Record, error) {
	query := fmt.Sprintf(
		"SELECT dkey, COALESCE(title, ''), COALESCE(year, ''), COALESCE(director, '') FROM %s ORDER BY dkey ASC",
		s.table,
	)
	var args []any
	switch {
	case page.bounded():
		query += " LIMIT ? OFFSET ?"
		args = append(args, page.Limit, page.Offset)
	case page.Offset > 0:
		query += " " + s.dialect.unboundedLimit + " OFFSET ?"
		args = append(args, page.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Key, &rec.Title, &rec.Year, &rec.Director); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// UpdateDirector sets the director column of the row identified by key.
func (s *SQLStore) UpdateDirector(ctx context.Context, key int64, director string) error {
	query := fmt.Sprintf("UPDATE %s SET director = ? WHERE dkey = ?", s.table)
	if _, err := s.db.ExecContext(ctx, query, director, key); err != nil {
		return fmt.Errorf("update director for %d: %w", key, err)
	}
	return nil
}
