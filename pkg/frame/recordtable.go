package frame

import (
	"sort"

	"github.com/corvus-data/corvus/pkg/errors"
)

// RecordTable is the second eager backend: a row-major table over generic
// records. It is interchangeable with MemTable; both share the full
// row/column API.
type RecordTable struct {
	cols []string
	recs []map[string]interface{}
}

// NewRecordTable creates a RecordTable from uniform row-oriented records.
// Every record must carry exactly the same key set; a ragged record set
// fails with a conversion error rather than producing a partial table.
func NewRecordTable(recs []map[string]interface{}) (*RecordTable, error) {
	if len(recs) == 0 {
		return &RecordTable{}, nil
	}

	cols := make([]string, 0, len(recs[0]))
	for col := range recs[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	copied := make([]map[string]interface{}, len(recs))
	for i, rec := range recs {
		if len(rec) != len(cols) {
			return nil, errors.Newf(errors.ErrorTypeConversion,
				"record %d has %d fields, expected %d", i, len(rec), len(cols))
		}
		row := make(map[string]interface{}, len(cols))
		for _, col := range cols {
			v, ok := rec[col]
			if !ok {
				return nil, errors.Newf(errors.ErrorTypeConversion,
					"record %d is missing field %q", i, col)
			}
			row[col] = v
		}
		copied[i] = row
	}

	return &RecordTable{cols: cols, recs: copied}, nil
}

// newRecordTableOrdered builds a RecordTable with an explicit column order,
// trusting the rows to be uniform.
func newRecordTableOrdered(cols []string, recs []map[string]interface{}) *RecordTable {
	return &RecordTable{cols: append([]string(nil), cols...), recs: recs}
}

// Columns returns the column names in order.
func (t *RecordTable) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *RecordTable) NumRows() int { return len(t.recs) }

// NumCols returns the number of columns.
func (t *RecordTable) NumCols() int { return len(t.cols) }

// Head returns a new RecordTable holding the first n rows.
func (t *RecordTable) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.recs) {
		n = len(t.recs)
	}
	return newRecordTableOrdered(t.cols, cloneRecords(t.recs[:n]))
}

// Clone returns a deep copy with no shared storage.
func (t *RecordTable) Clone() Table {
	return newRecordTableOrdered(t.cols, cloneRecords(t.recs))
}

// Column returns a copy of the named column's values.
func (t *RecordTable) Column(name string) ([]interface{}, error) {
	if columnIndex(t.cols, name) == -1 {
		return nil, errors.Newf(errors.ErrorTypeData, "unknown column %q", name)
	}
	values := make([]interface{}, len(t.recs))
	for i, rec := range t.recs {
		values[i] = rec[name]
	}
	return values, nil
}

// WithColumn returns a new RecordTable with the named column replaced.
func (t *RecordTable) WithColumn(name string, values []interface{}) (Table, error) {
	if columnIndex(t.cols, name) == -1 {
		return nil, errors.Newf(errors.ErrorTypeData, "unknown column %q", name)
	}
	if len(values) != len(t.recs) {
		return nil, errors.Newf(errors.ErrorTypeData,
			"column %q replacement has %d values, expected %d", name, len(values), len(t.recs))
	}

	recs := cloneRecords(t.recs)
	for i := range recs {
		recs[i][name] = values[i]
	}
	return newRecordTableOrdered(t.cols, recs), nil
}

// Row returns the values of row i in column order.
func (t *RecordTable) Row(i int) []interface{} {
	row := make([]interface{}, len(t.cols))
	for j, col := range t.cols {
		row[j] = t.recs[i][col]
	}
	return row
}

func cloneRecords(recs []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, len(recs))
	for i, rec := range recs {
		row := make(map[string]interface{}, len(rec))
		for k, v := range rec {
			row[k] = v
		}
		out[i] = row
	}
	return out
}
