// Package postgres provides a connector over a PostgreSQL table, deferring
// materialization to the database. Row and column counts and the column
// fingerprint resolve through lightweight queries without pulling the
// table.
package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/connector/base"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
)

// headRows is the preview size returned by Head.
const headRows = 5

// Connector defers a PostgreSQL table.
type Connector struct {
	*base.Connector

	pool    *pgxpool.Pool
	connStr string
	table   string
	cfg     *config.Config

	hash string
}

// New creates a postgres connector and verifies connectivity.
func New(ctx context.Context, connStr, table string, cfg *config.Config) (*Connector, error) {
	if table == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "table name is required")
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to ping database")
	}

	return &Connector{
		Connector: base.NewConnector("postgres:" + table),
		pool:      pool,
		connStr:   connStr,
		table:     table,
		cfg:       cfg,
	}, nil
}

// Execute materializes the full table.
func (c *Connector) Execute(ctx context.Context) (frame.Table, error) {
	start := time.Now()
	t, err := c.query(ctx, "SELECT * FROM "+c.ident())
	c.ObserveFetch("execute", start, err)
	return t, err
}

// Head returns a small preview of the table.
func (c *Connector) Head(ctx context.Context) (frame.Table, error) {
	start := time.Now()
	t, err := c.query(ctx, "SELECT * FROM "+c.ident()+" LIMIT "+strconv.Itoa(headRows))
	c.ObserveFetch("head", start, err)
	return t, err
}

// RowsCount returns the table's row count via COUNT(*).
func (c *Connector) RowsCount(ctx context.Context) (int64, error) {
	var count int64
	err := c.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+c.ident()).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeQuery, "failed to count rows")
	}
	return count, nil
}

// ColumnsCount returns the table's column count.
func (c *Connector) ColumnsCount(ctx context.Context) (int, error) {
	cols, err := c.columns(ctx)
	if err != nil {
		return 0, err
	}
	return len(cols), nil
}

// ColumnHash returns the fingerprint of the table's columns, computed once
// and assumed stable across repeated calls.
func (c *Connector) ColumnHash() string {
	if c.hash != "" {
		return c.hash
	}
	cols, err := c.columns(context.Background())
	if err != nil {
		return ""
	}
	c.hash = frame.ColumnHashOf(cols)
	return c.hash
}

// Equals reports whether the other connector addresses the same table on
// the same database.
func (c *Connector) Equals(other connector.Connector) bool {
	o, ok := other.(*Connector)
	return ok && o.connStr == c.connStr && o.table == c.table
}

// Close releases the connection pool.
func (c *Connector) Close(ctx context.Context) error {
	c.pool.Close()
	return nil
}

func (c *Connector) ident() string {
	return pgx.Identifier{c.table}.Sanitize()
}

// columns returns the table's column names in ordinal order from a
// zero-row query.
func (c *Connector) columns(ctx context.Context) ([]string, error) {
	rows, err := c.pool.Query(ctx, "SELECT * FROM "+c.ident()+" LIMIT 0")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "failed to describe table")
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, fd := range fields {
		cols[i] = fd.Name
	}
	return cols, nil
}

// query runs a SELECT and materializes the result into the configured
// engine.
func (c *Connector) query(ctx context.Context, sql string) (frame.Table, error) {
	rows, err := c.pool.Query(ctx, sql)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "query failed")
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, fd := range fields {
		cols[i] = fd.Name
	}

	var out [][]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeQuery, "failed to scan row")
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "row iteration failed")
	}

	return frame.Build(frame.Engine(c.cfg.Engine), cols, out)
}
