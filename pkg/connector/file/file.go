// Package file provides a connector over a local tabular file. It defers
// reading a .csv, .parquet or .xlsx path until the state holder resolves
// it, which makes it the reference connector for exercising the deferred
// load states without a network dependency.
package file

import (
	"context"
	"time"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/connector/base"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
	"github.com/corvus-data/corvus/pkg/load"
)

// headRows is the preview size returned by Head. The head builder applies
// its own row budget on top.
const headRows = 5

// Connector defers a local tabular file.
type Connector struct {
	*base.Connector

	path string
	cfg  *config.Config

	hash string
}

// New creates a file connector for a supported path.
func New(path string, cfg *config.Config) (*Connector, error) {
	if !load.SupportedPath(path) {
		return nil, errors.Newf(errors.ErrorTypeFileFormat, "invalid file format: %q", path)
	}
	return &Connector{
		Connector: base.NewConnector(path),
		path:      path,
		cfg:       cfg,
	}, nil
}

// Execute materializes the full table from the file.
func (c *Connector) Execute(ctx context.Context) (frame.Table, error) {
	start := time.Now()
	t, err := load.ImportFromPath(c.path, c.cfg)
	c.ObserveFetch("execute", start, err)
	return t, err
}

// Head returns a small preview of the file.
func (c *Connector) Head(ctx context.Context) (frame.Table, error) {
	start := time.Now()
	t, err := load.ImportFromPath(c.path, c.cfg)
	c.ObserveFetch("head", start, err)
	if err != nil {
		return nil, err
	}
	return t.Head(headRows), nil
}

// RowsCount returns the file's row count.
func (c *Connector) RowsCount(ctx context.Context) (int64, error) {
	t, err := load.ImportFromPath(c.path, c.cfg)
	if err != nil {
		return 0, err
	}
	return int64(t.NumRows()), nil
}

// ColumnsCount returns the file's column count.
func (c *Connector) ColumnsCount(ctx context.Context) (int, error) {
	t, err := load.ImportFromPath(c.path, c.cfg)
	if err != nil {
		return 0, err
	}
	return t.NumCols(), nil
}

// ColumnHash returns the fingerprint of the file's columns, computed once.
func (c *Connector) ColumnHash() string {
	if c.hash != "" {
		return c.hash
	}
	t, err := load.ImportFromPath(c.path, c.cfg)
	if err != nil {
		return ""
	}
	c.hash = frame.ColumnHash(t)
	return c.hash
}

// Equals reports whether the other connector defers the same path.
func (c *Connector) Equals(other connector.Connector) bool {
	o, ok := other.(*Connector)
	return ok && o.path == c.path
}

// Close releases resources; file connectors hold none between fetches.
func (c *Connector) Close(ctx context.Context) error {
	return nil
}
