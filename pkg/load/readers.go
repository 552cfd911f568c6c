package load

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
)

// SheetsURLPrefix is the remote-spreadsheet URL prefix recognized by the
// path importer.
const SheetsURLPrefix = "https://docs.google.com/spreadsheets/"

// SupportedPath reports whether a string is a loadable file path or a
// recognized spreadsheet URL.
func SupportedPath(path string) bool {
	return strings.HasSuffix(path, ".csv") ||
		strings.HasSuffix(path, ".parquet") ||
		strings.HasSuffix(path, ".xlsx") ||
		strings.HasPrefix(path, SheetsURLPrefix)
}

// ImportFromPath imports a table from a file (csv, parquet, xlsx) or a
// recognized spreadsheet URL, materializing into the configured engine.
// Unrecognized extensions fail deterministically.
func ImportFromPath(path string, cfg *config.Config) (frame.Table, error) {
	engine := frame.Engine(cfg.Engine)

	switch {
	case strings.HasSuffix(path, ".csv"):
		return readCSV(path, engine)
	case strings.HasSuffix(path, ".parquet"):
		return readParquet(path, engine)
	case strings.HasSuffix(path, ".xlsx"):
		return readXLSX(path, engine)
	case strings.HasPrefix(path, SheetsURLPrefix):
		tables, err := ImportFromSheetsURL(context.Background(), path, cfg)
		if err != nil {
			return nil, err
		}
		if len(tables) == 0 {
			return nil, errors.New(errors.ErrorTypeData, "spreadsheet has no sheets")
		}
		return tables[0], nil
	default:
		return nil, errors.Newf(errors.ErrorTypeFileFormat, "invalid file format: %q", path)
	}
}

// readCSV reads a headered CSV file into the configured engine, inferring
// numeric and boolean cell types.
func readCSV(path string, engine frame.Engine) (frame.Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is caller-provided by design
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to open CSV file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse CSV file")
	}
	if len(records) == 0 {
		return frame.Build(engine, nil, nil)
	}

	cols := records[0]
	rows := make([][]interface{}, len(records)-1)
	for i, record := range records[1:] {
		row := make([]interface{}, len(cols))
		for j := range cols {
			if j < len(record) {
				row[j] = inferValue(record[j])
			}
		}
		rows[i] = row
	}

	return frame.Build(engine, cols, rows)
}

// readParquet reads a parquet file through the Arrow reader and
// materializes into the configured engine.
func readParquet(path string, engine frame.Engine) (frame.Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is caller-provided by design
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to open parquet file")
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read parquet file")
	}
	defer pf.Close()

	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to create arrow reader")
	}

	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read parquet table")
	}
	defer tbl.Release()

	cols := make([]string, tbl.Schema().NumFields())
	for i := range cols {
		cols[i] = tbl.Schema().Field(i).Name
	}

	var rows [][]interface{}
	tr := array.NewTableReader(tbl, 1024)
	defer tr.Release()
	for tr.Next() {
		chunk := frame.NewArrowTable(tr.Record())
		for i := 0; i < chunk.NumRows(); i++ {
			rows = append(rows, chunk.Row(i))
		}
		chunk.Release()
	}

	return frame.Build(engine, cols, rows)
}

// readXLSX reads the first sheet of an Excel workbook, first row as header.
func readXLSX(path string, engine frame.Engine) (frame.Table, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to open xlsx file")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrorTypeData, "workbook has no sheets")
	}

	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read xlsx sheet")
	}
	if len(records) == 0 {
		return frame.Build(engine, nil, nil)
	}

	cols := records[0]
	rows := make([][]interface{}, len(records)-1)
	for i, record := range records[1:] {
		row := make([]interface{}, len(cols))
		for j := range cols {
			if j < len(record) {
				row[j] = inferValue(record[j])
			}
		}
		rows[i] = row
	}

	return frame.Build(engine, cols, rows)
}

// inferValue parses a textual cell into int64, float64 or bool where
// possible, keeping the string otherwise.
func inferValue(s string) interface{} {
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return s
}
