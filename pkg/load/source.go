// Package load normalizes heterogeneous tabular inputs into the canonical
// table representation. Supported input shapes form a closed tagged union:
// an existing table, a file path, row-oriented records, a column-oriented
// mapping, a single named series, or a deferred connector. Each variant has
// exactly one normalization path; connector sources bypass normalization
// entirely and stay deferred until the state holder resolves them.
package load

import (
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/frame"
)

// Kind discriminates the supported source variants.
type Kind int

const (
	// KindTable is an already-materialized table.
	KindTable Kind = iota
	// KindPath is a file path or recognized spreadsheet URL.
	KindPath
	// KindRecords is a row-oriented record sequence.
	KindRecords
	// KindColumns is a column-oriented mapping.
	KindColumns
	// KindSeries is a single named column.
	KindSeries
	// KindConnector is a deferred data source.
	KindConnector
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindPath:
		return "path"
	case KindRecords:
		return "records"
	case KindColumns:
		return "columns"
	case KindSeries:
		return "series"
	case KindConnector:
		return "connector"
	default:
		return "unknown"
	}
}

// Source is one input to the dataframe loading layer, discriminated at the
// API boundary by its Kind.
type Source struct {
	kind Kind

	table   frame.Table
	path    string
	records []map[string]interface{}
	columns map[string][]interface{}
	series  struct {
		name   string
		values []interface{}
	}
	conn connector.Connector
}

// FromTable wraps an already-materialized table. The table still passes
// engine detection and validation at load time.
func FromTable(t frame.Table) Source {
	return Source{kind: KindTable, table: t}
}

// FromPath wraps a file path (.csv, .parquet, .xlsx) or a recognized
// spreadsheet URL.
func FromPath(path string) Source {
	return Source{kind: KindPath, path: path}
}

// FromRecords wraps a row-oriented sequence of uniform records.
func FromRecords(records []map[string]interface{}) Source {
	return Source{kind: KindRecords, records: records}
}

// FromColumns wraps a column-oriented mapping of equal-length value slices.
func FromColumns(columns map[string][]interface{}) Source {
	return Source{kind: KindColumns, columns: columns}
}

// FromSeries wraps a single named column.
func FromSeries(name string, values []interface{}) Source {
	s := Source{kind: KindSeries}
	s.series.name = name
	s.series.values = values
	return s
}

// FromConnector wraps a deferred data source. Connector sources bypass
// normalization; the state holder records them as unloaded.
func FromConnector(c connector.Connector) Source {
	return Source{kind: KindConnector, conn: c}
}

// Kind returns the source's variant.
func (s Source) Kind() Kind {
	return s.kind
}

// Connector returns the wrapped connector for KindConnector sources,
// nil otherwise.
func (s Source) Connector() connector.Connector {
	return s.conn
}

// Path returns the wrapped path for KindPath sources.
func (s Source) Path() string {
	return s.path
}
