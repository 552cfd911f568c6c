// Package connector defines the deferred data source contract consumed by
// the dataframe state holder. A Connector stands in for a not-yet
// materialized table: the holder keeps at most one Connector at a time and
// resolves reads through it until the table is loaded.
package connector

import (
	"context"

	"go.uber.org/zap"

	"github.com/corvus-data/corvus/pkg/frame"
)

// Connector is the capability set every deferred source must implement.
// All calls are synchronous and block for their duration; callers needing
// bounded latency wrap the context externally.
type Connector interface {
	// Name identifies the connector instance; used as the fallback table
	// name by the facade.
	Name() string

	// Execute materializes the full table.
	Execute(ctx context.Context) (frame.Table, error)

	// Head returns a lightweight preview of the source, or nil when no
	// preview is available.
	Head(ctx context.Context) (frame.Table, error)

	// RowsCount returns the source's row count without materializing it.
	RowsCount(ctx context.Context) (int64, error)

	// ColumnsCount returns the source's column count without materializing it.
	ColumnsCount(ctx context.Context) (int, error)

	// ColumnHash returns a stable fingerprint of the source's columns,
	// stable across repeated remote calls.
	ColumnHash() string

	// SetLogger injects the logger used for connector diagnostics.
	SetLogger(logger *zap.Logger)

	// Equals reports whether two connectors address the same source. Used
	// for table-less equality checks between connector-backed frames.
	Equals(other Connector) bool

	// Close releases any resources held by the connector.
	Close(ctx context.Context) error
}
