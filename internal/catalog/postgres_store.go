package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dvdenrich/internal/config"
)

// pgxConn is the subset of *pgx.Conn used by PostgresStore.
type pgxConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// PostgresStore implements Store over a single pgx connection.
type PostgresStore struct {
	conn  pgxConn
	table string
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStoreWithConn constructs a store from an existing connection.
func NewPostgresStoreWithConn(conn pgxConn, table string) (*PostgresStore, error) {
	if conn == nil {
		return nil, errors.New("connection is required")
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresStore{conn: conn, table: table}, nil
}

func openPostgres(ctx context.Context, cfg config.Database) (Store, error) {
	connCfg, err := pgx.ParseConfig("")
	if err != nil {
		return nil, connectionError("open", fmt.Errorf("parse postgres config: %w", err))
	}
	connCfg.Host = cfg.Host
	connCfg.Port = uint16(cfg.Port)
	connCfg.User = cfg.User
	connCfg.Password = cfg.Password
	connCfg.Database = cfg.Name

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return nil, connectionError("open", fmt.Errorf("connect postgres %s:%d: %w", cfg.Host, cfg.Port, err))
	}
	store, err := NewPostgresStoreWithConn(conn, cfg.Table)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, connectionError("open", err)
	}
	return store, nil
}

// Close closes the connection.
func (s *PostgresStore) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close(context.Background())
}

// FetchRecords returns the rows selected by page in ascending key order.
func (s *PostgresStore) FetchRecords(ctx context.Context, page Page) ([]Record, error) {
	query := fmt.Sprintf(
		"SELECT dkey, COALESCE(title, ''), COALESCE(year::text, ''), COALESCE(director, '') FROM %s ORDER BY dkey ASC",
		s.table,
	)
	var args []any
	switch {
	case page.bounded():
		query += " LIMIT $1 OFFSET $2"
		args = append(args, page.Limit, page.Offset)
	case page.Offset > 0:
		query += " OFFSET $1"
		args = append(args, page.Offset)
	}

	rows, err := s.conn.Query(ctx, query, args...)
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
func (s *PostgresStore) UpdateDirector(ctx context.Context, key int64, director string) error {
	query := fmt.Sprintf("UPDATE %s SET director = $1 WHERE dkey = $2", s.table)
	if _, err := s.conn.Exec(ctx, query, director, key); err != nil {
		return fmt.Errorf("update director for %d: %w", key, err)
	}
	return nil
}
