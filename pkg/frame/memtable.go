package frame

import (
	"github.com/corvus-data/corvus/pkg/errors"
)

// MemTable is the primary eager backend: a column-major in-memory table.
type MemTable struct {
	cols []string
	data map[string][]interface{}
	rows int
}

// NewMemTable creates a MemTable from an ordered column list and a
// column-to-values mapping. All columns must have the same length.
func NewMemTable(cols []string, data map[string][]interface{}) (*MemTable, error) {
	rows := -1
	for _, col := range cols {
		values, ok := data[col]
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeConversion, "missing values for column %q", col)
		}
		if rows == -1 {
			rows = len(values)
		} else if len(values) != rows {
			return nil, errors.Newf(errors.ErrorTypeConversion,
				"column %q has %d values, expected %d", col, len(values), rows)
		}
	}
	if rows == -1 {
		rows = 0
	}

	copied := make(map[string][]interface{}, len(cols))
	for _, col := range cols {
		copied[col] = append([]interface{}(nil), data[col]...)
	}

	return &MemTable{
		cols: append([]string(nil), cols...),
		data: copied,
		rows: rows,
	}, nil
}

// Columns returns the column names in order.
func (t *MemTable) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *MemTable) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *MemTable) NumCols() int { return len(t.cols) }

// Head returns a new MemTable holding the first n rows.
func (t *MemTable) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > t.rows {
		n = t.rows
	}

	data := make(map[string][]interface{}, len(t.cols))
	for _, col := range t.cols {
		data[col] = append([]interface{}(nil), t.data[col][:n]...)
	}
	return &MemTable{cols: append([]string(nil), t.cols...), data: data, rows: n}
}

// Clone returns a deep copy with no shared storage.
func (t *MemTable) Clone() Table {
	data := make(map[string][]interface{}, len(t.cols))
	for _, col := range t.cols {
		data[col] = append([]interface{}(nil), t.data[col]...)
	}
	return &MemTable{cols: append([]string(nil), t.cols...), data: data, rows: t.rows}
}

// Column returns a copy of the named column's values.
func (t *MemTable) Column(name string) ([]interface{}, error) {
	values, ok := t.data[name]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData, "unknown column %q", name)
	}
	return append([]interface{}(nil), values...), nil
}

// WithColumn returns a new MemTable with the named column replaced.
func (t *MemTable) WithColumn(name string, values []interface{}) (Table, error) {
	if _, ok := t.data[name]; !ok {
		return nil, errors.Newf(errors.ErrorTypeData, "unknown column %q", name)
	}
	if len(values) != t.rows {
		return nil, errors.Newf(errors.ErrorTypeData,
			"column %q replacement has %d values, expected %d", name, len(values), t.rows)
	}

	out := t.Clone().(*MemTable)
	out.data[name] = append([]interface{}(nil), values...)
	return out, nil
}

// Row returns the values of row i in column order.
func (t *MemTable) Row(i int) []interface{} {
	row := make([]interface{}, len(t.cols))
	for j, col := range t.cols {
		row[j] = t.data[col][i]
	}
	return row
}
