package frame

import (
	"strings"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() (cols []string, data map[string][]interface{}) {
	cols = []string{"name", "amount"}
	data = map[string][]interface{}{
		"name":   {"alice", "bob", "carol"},
		"amount": {int64(100), int64(250), int64(75)},
	}
	return cols, data
}

func TestMemTable_Basics(t *testing.T) {
	cols, data := testColumns()
	tbl, err := NewMemTable(cols, data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "amount"}, tbl.Columns())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, []interface{}{"bob", int64(250)}, tbl.Row(1))
}

func TestMemTable_MismatchedColumnLengths(t *testing.T) {
	_, err := NewMemTable([]string{"a", "b"}, map[string][]interface{}{
		"a": {1, 2, 3},
		"b": {1},
	})
	require.Error(t, err)
}

func TestRecordTable_Basics(t *testing.T) {
	tbl, err := NewRecordTable([]map[string]interface{}{
		{"name": "alice", "amount": int64(100)},
		{"name": "bob", "amount": int64(250)},
	})
	require.NoError(t, err)

	// Columns come out sorted for deterministic ordering.
	assert.Equal(t, []string{"amount", "name"}, tbl.Columns())
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []interface{}{int64(250), "bob"}, tbl.Row(1))
}

func TestRecordTable_RaggedRecords(t *testing.T) {
	_, err := NewRecordTable([]map[string]interface{}{
		{"name": "alice", "amount": int64(100)},
		{"name": "bob"},
	})
	require.Error(t, err)
}

func TestBuild_AllEngines(t *testing.T) {
	cols := []string{"city", "pop"}
	rows := [][]interface{}{
		{"oslo", int64(700000)},
		{"bergen", int64(290000)},
	}

	for _, engine := range []Engine{EngineMem, EngineRecords, EngineArrow} {
		t.Run(string(engine), func(t *testing.T) {
			tbl, err := Build(engine, cols, rows)
			require.NoError(t, err)

			detected, err := Detect(tbl)
			require.NoError(t, err)
			assert.Equal(t, engine, detected)

			assert.Equal(t, cols, tbl.Columns())
			assert.Equal(t, 2, tbl.NumRows())
			assert.Equal(t, []interface{}{"oslo", int64(700000)}, tbl.Row(0))
		})
	}
}

func TestClone_NoSharedStorage(t *testing.T) {
	for _, engine := range []Engine{EngineMem, EngineRecords, EngineArrow} {
		t.Run(string(engine), func(t *testing.T) {
			tbl, err := Build(engine, []string{"v"}, [][]interface{}{{"one"}, {"two"}})
			require.NoError(t, err)

			clone := tbl.Clone()
			mutated, err := clone.WithColumn("v", []interface{}{"x", "y"})
			require.NoError(t, err)

			// The original is untouched by mutations derived from the clone.
			assert.Equal(t, []interface{}{"one"}, tbl.Row(0))
			assert.Equal(t, []interface{}{"x"}, mutated.Row(0))
		})
	}
}

func TestHead_Bounds(t *testing.T) {
	for _, engine := range []Engine{EngineMem, EngineRecords, EngineArrow} {
		t.Run(string(engine), func(t *testing.T) {
			tbl, err := Build(engine, []string{"v"}, [][]interface{}{{1}, {2}, {3}})
			require.NoError(t, err)

			assert.Equal(t, 2, tbl.Head(2).NumRows())
			assert.Equal(t, 3, tbl.Head(10).NumRows())

			empty := tbl.Head(0)
			assert.Equal(t, 0, empty.NumRows())
			assert.Equal(t, []string{"v"}, empty.Columns())
		})
	}
}

func TestWithColumn_Validation(t *testing.T) {
	tbl, err := Build(EngineMem, []string{"v"}, [][]interface{}{{1}, {2}})
	require.NoError(t, err)

	_, err = tbl.WithColumn("missing", []interface{}{1, 2})
	assert.Error(t, err)

	_, err = tbl.WithColumn("v", []interface{}{1})
	assert.Error(t, err)
}

func TestToCSV(t *testing.T) {
	tbl, err := Build(EngineMem, []string{"name", "n"}, [][]interface{}{
		{"alice", int64(1)},
		{"bob", int64(2)},
	})
	require.NoError(t, err)

	out, err := ToCSV(tbl)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,n", lines[0])
	assert.Equal(t, "alice,1", lines[1])
}

func TestToJSON(t *testing.T) {
	tbl, err := Build(EngineMem, []string{"name"}, [][]interface{}{{"alice"}})
	require.NoError(t, err)

	out, err := ToJSON(tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"alice"}]`, out)
}

func TestArrowTable_NullHandling(t *testing.T) {
	tbl, err := Build(EngineArrow, []string{"v"}, [][]interface{}{{"a"}, {nil}})
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"a"}, tbl.Row(0))
	assert.Equal(t, []interface{}{nil}, tbl.Row(1))
}

func TestArrowTable_WidensNarrowNumerics(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "count", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		{Name: "ratio", Type: arrow.PrimitiveTypes.Float32, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	builder.Field(0).(*array.Int32Builder).Append(7)
	builder.Field(1).(*array.Float32Builder).Append(2.5)

	rec := builder.NewRecord()
	defer rec.Release()
	tbl := NewArrowTable(rec)

	// Narrow numeric widths widen to the engine's native int64/float64.
	assert.Equal(t, []interface{}{int64(7), 2.5}, tbl.Row(0))
}

func TestArrowTable_TimestampColumnsSurviveExtraction(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "ts", Type: &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	ms := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	builder.Field(0).(*array.TimestampBuilder).Append(arrow.Timestamp(ms))

	rec := builder.NewRecord()
	defer rec.Release()
	tbl := NewArrowTable(rec)

	// Types without a native mapping come through as their string form,
	// never as a silent null.
	v := tbl.Row(0)[0]
	require.NotNil(t, v)
	s, ok := v.(string)
	require.True(t, ok)
	assert.Contains(t, s, "2024-03-01")

	values, err := tbl.Column("ts")
	require.NoError(t, err)
	assert.Equal(t, v, values[0])
}

func TestArrowTable_CloneKeepsDeclaredTypes(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "v", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	builder.Field(0).(*array.Int64Builder).AppendNull()
	builder.Field(0).(*array.Int64Builder).AppendNull()

	rec := builder.NewRecord()
	defer rec.Release()
	tbl := NewArrowTable(rec)

	// An all-null column must keep its declared type through deep copies
	// instead of collapsing to the inference default.
	clone := tbl.Clone().(*ArrowTable)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, clone.Record().Schema().Field(0).Type))
	assert.Equal(t, []interface{}{nil}, clone.Row(0))

	head := tbl.Head(1).(*ArrowTable)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, head.Record().Schema().Field(0).Type))
}
