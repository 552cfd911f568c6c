// Package frame provides the canonical in-memory table representation for
// Corvus and the closed set of backends ("engines") that can produce it.
//
// Three backends exist:
//   - MemTable: eager, column-major in-memory table
//   - RecordTable: eager, row-major table over generic records
//   - ArrowTable: columnar table backed by Apache Arrow
//
// MemTable and RecordTable form the interchangeable eager family; ArrowTable
// is the columnar family with its own null and type semantics. The Engine
// tag for a table is determined by Detect, and every backend implements
// deep copy through Clone, per-engine, so call sites never branch on the
// concrete type.
package frame

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/json"
)

// Table is an opaque two-dimensional labeled structure with named columns
// and an ordered set of rows. Once loaded, its column set does not change
// without explicit reassignment; mutating operations return new tables.
type Table interface {
	// Columns returns the column names in order.
	Columns() []string
	// NumRows returns the number of rows.
	NumRows() int
	// NumCols returns the number of columns.
	NumCols() int
	// Head returns a new table holding the first n rows. n larger than the
	// row count yields all rows; n <= 0 yields an empty table with the same
	// columns.
	Head(n int) Table
	// Clone returns a deep copy with no shared storage.
	Clone() Table
	// Column returns a copy of the named column's values.
	Column(name string) ([]interface{}, error)
	// WithColumn returns a new table with the named column's values
	// replaced. The value count must match the row count.
	WithColumn(name string, values []interface{}) (Table, error)
	// Row returns the values of row i in column order.
	Row(i int) []interface{}
}

// ToCSV serializes a table as CSV with a header row, no index column.
func ToCSV(t Table) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns()); err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeData, "failed to write CSV header")
	}

	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		fields := make([]string, len(row))
		for j, v := range row {
			fields[j] = formatCell(v)
		}
		if err := w.Write(fields); err != nil {
			return "", errors.Wrap(err, errors.ErrorTypeData, "failed to write CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeData, "failed to flush CSV")
	}
	return buf.String(), nil
}

// ToRecords converts a table to row-oriented records keyed by column name.
func ToRecords(t Table) []map[string]interface{} {
	cols := t.Columns()
	recs := make([]map[string]interface{}, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		rec := make(map[string]interface{}, len(cols))
		for j, col := range cols {
			rec[col] = row[j]
		}
		recs[i] = rec
	}
	return recs
}

// ToJSON serializes a table as a JSON array of row records.
func ToJSON(t Table) (string, error) {
	out, err := json.MarshalToString(ToRecords(t))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeData, "failed to marshal table to JSON")
	}
	return out, nil
}

func formatCell(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// columnIndex returns the position of name in cols, or -1.
func columnIndex(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}
