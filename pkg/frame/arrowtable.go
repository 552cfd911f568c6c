package frame

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/corvus-data/corvus/pkg/errors"
)

// ArrowTable is the columnar backend, wrapping an Apache Arrow record.
// Unlike the eager backends it carries typed columns with explicit
// validity bitmaps, so nil cells surface as Arrow nulls.
type ArrowTable struct {
	rec arrow.Record
}

// NewArrowTable wraps an existing Arrow record. The table takes its own
// reference; the caller keeps ownership of the original.
func NewArrowTable(rec arrow.Record) *ArrowTable {
	rec.Retain()
	return &ArrowTable{rec: rec}
}

// newArrowTableFromRows builds an ArrowTable from generic rows, inferring
// each column's Arrow type from its first non-nil value.
func newArrowTableFromRows(cols []string, rows [][]interface{}) (*ArrowTable, error) {
	fields := make([]arrow.Field, len(cols))
	for i, col := range cols {
		fields[i] = arrow.Field{Name: col, Type: inferArrowType(rows, i), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for _, row := range rows {
		if len(row) != len(cols) {
			return nil, errors.Newf(errors.ErrorTypeConversion,
				"row has %d values, expected %d", len(row), len(cols))
		}
		for i, v := range row {
			if err := appendArrowValue(builder.Field(i), v); err != nil {
				return nil, err
			}
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()
	return NewArrowTable(rec), nil
}

// Release drops the table's reference on the underlying Arrow record.
func (t *ArrowTable) Release() {
	t.rec.Release()
}

// Record returns the underlying Arrow record.
func (t *ArrowTable) Record() arrow.Record {
	return t.rec
}

// Columns returns the column names in order.
func (t *ArrowTable) Columns() []string {
	schema := t.rec.Schema()
	cols := make([]string, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		cols[i] = schema.Field(i).Name
	}
	return cols
}

// NumRows returns the number of rows.
func (t *ArrowTable) NumRows() int { return int(t.rec.NumRows()) }

// NumCols returns the number of columns.
func (t *ArrowTable) NumCols() int { return int(t.rec.NumCols()) }

// Head returns a new ArrowTable holding the first n rows.
func (t *ArrowTable) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > t.NumRows() {
		n = t.NumRows()
	}
	return t.copyRows(n)
}

// Clone returns a deep copy with no shared storage.
func (t *ArrowTable) Clone() Table {
	return t.copyRows(t.NumRows())
}

// copyRows deep-copies the first n rows into a fresh record built against
// the source schema, so copies never drift types (an all-null column keeps
// its declared type instead of being re-inferred).
func (t *ArrowTable) copyRows(n int) *ArrowTable {
	builder := array.NewRecordBuilder(memory.DefaultAllocator, t.rec.Schema())
	defer builder.Release()

	for j := 0; j < t.NumCols(); j++ {
		col := t.rec.Column(j)
		b := builder.Field(j)
		for i := 0; i < n; i++ {
			if col.IsNull(i) {
				b.AppendNull()
				continue
			}
			if err := copyArrowValue(b, col, i); err != nil {
				// Values copied into a same-typed builder always append cleanly.
				panic(err)
			}
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()
	return NewArrowTable(rec)
}

// copyArrowValue appends column value i to a builder of the same type.
func copyArrowValue(b array.Builder, col arrow.Array, i int) error {
	switch c := col.(type) {
	case *array.Boolean:
		b.(*array.BooleanBuilder).Append(c.Value(i))
	case *array.Int64:
		b.(*array.Int64Builder).Append(c.Value(i))
	case *array.Float64:
		b.(*array.Float64Builder).Append(c.Value(i))
	case *array.String:
		b.(*array.StringBuilder).Append(c.Value(i))
	default:
		// Every arrow builder round-trips its own array's string form.
		return b.AppendValueFromString(col.ValueStr(i))
	}
	return nil
}

// Column returns a copy of the named column's values.
func (t *ArrowTable) Column(name string) ([]interface{}, error) {
	idx := columnIndex(t.Columns(), name)
	if idx == -1 {
		return nil, errors.Newf(errors.ErrorTypeData, "unknown column %q", name)
	}

	col := t.rec.Column(idx)
	values := make([]interface{}, col.Len())
	for i := 0; i < col.Len(); i++ {
		values[i] = arrowValueAt(col, i)
	}
	return values, nil
}

// WithColumn returns a new ArrowTable with the named column replaced.
func (t *ArrowTable) WithColumn(name string, values []interface{}) (Table, error) {
	cols := t.Columns()
	idx := columnIndex(cols, name)
	if idx == -1 {
		return nil, errors.Newf(errors.ErrorTypeData, "unknown column %q", name)
	}
	if len(values) != t.NumRows() {
		return nil, errors.Newf(errors.ErrorTypeData,
			"column %q replacement has %d values, expected %d", name, len(values), t.NumRows())
	}

	rows := materializeRows(t)
	for i := range rows {
		rows[i][idx] = values[i]
	}
	return newArrowTableFromRows(cols, rows)
}

// Row returns the values of row i in column order.
func (t *ArrowTable) Row(i int) []interface{} {
	row := make([]interface{}, t.NumCols())
	for j := 0; j < t.NumCols(); j++ {
		row[j] = arrowValueAt(t.rec.Column(j), i)
	}
	return row
}

func materializeRows(t *ArrowTable) [][]interface{} {
	rows := make([][]interface{}, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// inferArrowType picks an Arrow type from the first non-nil value of
// column idx; columns with no values default to strings.
func inferArrowType(rows [][]interface{}, idx int) arrow.DataType {
	for _, row := range rows {
		if idx >= len(row) || row[idx] == nil {
			continue
		}
		switch row[idx].(type) {
		case bool:
			return arrow.FixedWidthTypes.Boolean
		case int, int32, int64:
			return arrow.PrimitiveTypes.Int64
		case float32, float64:
			return arrow.PrimitiveTypes.Float64
		default:
			return arrow.BinaryTypes.String
		}
	}
	return arrow.BinaryTypes.String
}

// appendArrowValue appends a generic value to an Arrow builder, mirroring
// the column's inferred type. Incompatible values become nulls.
func appendArrowValue(builder array.Builder, value interface{}) error {
	if value == nil {
		builder.AppendNull()
		return nil
	}

	switch b := builder.(type) {
	case *array.BooleanBuilder:
		if v, ok := value.(bool); ok {
			b.Append(v)
		} else {
			b.AppendNull()
		}

	case *array.Int64Builder:
		switch v := value.(type) {
		case int:
			b.Append(int64(v))
		case int32:
			b.Append(int64(v))
		case int64:
			b.Append(v)
		default:
			b.AppendNull()
		}

	case *array.Float64Builder:
		switch v := value.(type) {
		case float32:
			b.Append(float64(v))
		case float64:
			b.Append(v)
		case int:
			b.Append(float64(v))
		case int64:
			b.Append(float64(v))
		default:
			b.AppendNull()
		}

	case *array.StringBuilder:
		if v, ok := value.(string); ok {
			b.Append(v)
		} else {
			b.Append(formatCell(value))
		}

	default:
		return errors.Newf(errors.ErrorTypeUnsupported, "unsupported arrow builder type %T", builder)
	}

	return nil
}

// arrowValueAt extracts a generic value from an Arrow array. Integer
// widths widen to int64 and float widths to float64; types outside the
// native mapping (timestamps, dates, decimals) surface through the array's
// own string form rather than being dropped.
func arrowValueAt(col arrow.Array, i int) interface{} {
	if col.IsNull(i) {
		return nil
	}

	switch c := col.(type) {
	case *array.Boolean:
		return c.Value(i)
	case *array.Int8:
		return int64(c.Value(i))
	case *array.Int16:
		return int64(c.Value(i))
	case *array.Int32:
		return int64(c.Value(i))
	case *array.Int64:
		return c.Value(i)
	case *array.Uint8:
		return int64(c.Value(i))
	case *array.Uint16:
		return int64(c.Value(i))
	case *array.Uint32:
		return int64(c.Value(i))
	case *array.Uint64:
		return int64(c.Value(i))
	case *array.Float32:
		return float64(c.Value(i))
	case *array.Float64:
		return c.Value(i)
	case *array.String:
		return c.Value(i)
	case *array.LargeString:
		return c.Value(i)
	case *array.Binary:
		return c.Value(i)
	default:
		return col.ValueStr(i)
	}
}
