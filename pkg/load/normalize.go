package load

import (
	"sort"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
)

// Normalize converts a source into a canonical table for the configured
// engine. Conversion failures never produce a partial table. Connector
// sources are not normalized here; the state holder keeps them deferred.
func Normalize(src Source, cfg *config.Config) (frame.Table, error) {
	switch src.kind {
	case KindTable:
		return src.table, nil

	case KindPath:
		return ImportFromPath(src.path, cfg)

	case KindRecords:
		return normalizeRecords(src.records, cfg)

	case KindColumns:
		return normalizeColumns(src.columns, cfg)

	case KindSeries:
		rows := make([][]interface{}, len(src.series.values))
		for i, v := range src.series.values {
			rows[i] = []interface{}{v}
		}
		return frame.Build(frame.Engine(cfg.Engine), []string{src.series.name}, rows)

	case KindConnector:
		return nil, errors.New(errors.ErrorTypeInternal,
			"connector sources are deferred and cannot be normalized")

	default:
		return nil, errors.Newf(errors.ErrorTypeConversion,
			"invalid input data; cannot convert source kind %d to a table", src.kind)
	}
}

// normalizeRecords converts uniform row-oriented records. Ragged record
// sets fail with a conversion error rather than dropping data.
func normalizeRecords(records []map[string]interface{}, cfg *config.Config) (frame.Table, error) {
	if len(records) == 0 {
		return frame.Build(frame.Engine(cfg.Engine), nil, nil)
	}

	cols := make([]string, 0, len(records[0]))
	for col := range records[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	rows := make([][]interface{}, len(records))
	for i, rec := range records {
		if len(rec) != len(cols) {
			return nil, errors.Newf(errors.ErrorTypeConversion,
				"invalid input data; record %d has %d fields, expected %d", i, len(rec), len(cols))
		}
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			v, ok := rec[col]
			if !ok {
				return nil, errors.Newf(errors.ErrorTypeConversion,
					"invalid input data; record %d is missing field %q", i, col)
			}
			row[j] = v
		}
		rows[i] = row
	}

	return frame.Build(frame.Engine(cfg.Engine), cols, rows)
}

// normalizeColumns converts a column-oriented mapping. Mismatched column
// lengths fail with a conversion error.
func normalizeColumns(columns map[string][]interface{}, cfg *config.Config) (frame.Table, error) {
	cols := make([]string, 0, len(columns))
	for col := range columns {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	numRows := -1
	for _, col := range cols {
		if numRows == -1 {
			numRows = len(columns[col])
		} else if len(columns[col]) != numRows {
			return nil, errors.Newf(errors.ErrorTypeConversion,
				"invalid input data; column %q has %d values, expected %d",
				col, len(columns[col]), numRows)
		}
	}
	if numRows == -1 {
		numRows = 0
	}

	rows := make([][]interface{}, numRows)
	for i := range rows {
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			row[j] = columns[col][i]
		}
		rows[i] = row
	}

	return frame.Build(frame.Engine(cfg.Engine), cols, rows)
}
