package frame

import (
	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/errors"
)

// Engine identifies the table backend family a Table was produced by.
type Engine string

const (
	// EngineMem is the primary eager backend (column-major in-memory).
	EngineMem Engine = config.EngineMem
	// EngineRecords is the second eager backend (row-major records),
	// interchangeable with EngineMem.
	EngineRecords Engine = config.EngineRecords
	// EngineArrow is the columnar backend.
	EngineArrow Engine = config.EngineArrow
)

// Eager reports whether the engine belongs to the eager family.
func (e Engine) Eager() bool {
	return e == EngineMem || e == EngineRecords
}

// Detect inspects a table's concrete backend type and returns the matching
// engine tag. Tables produced by an unknown backend fail.
func Detect(t Table) (Engine, error) {
	switch t.(type) {
	case *MemTable:
		return EngineMem, nil
	case *RecordTable:
		return EngineRecords, nil
	case *ArrowTable:
		return EngineArrow, nil
	default:
		return "", errors.Newf(errors.ErrorTypeEngine,
			"unrecognized table backend %T; must be mem, records or arrow", t)
	}
}

// Validate checks a detected engine against the configured one. It is a
// pure function of its inputs: eager tables must match the configured eager
// backend exactly, while columnar tables are accepted regardless of the
// configured engine provided columnar support is enabled. Mixing backends
// otherwise produces wrong results downstream, so it is rejected here at
// load time rather than deferred to query time.
func Validate(detected Engine, cfg *config.Config) error {
	if detected == EngineArrow {
		if !cfg.EnableColumnar {
			return errors.New(errors.ErrorTypeDependency,
				"columnar support is disabled; enable it to load arrow tables")
		}
		return nil
	}

	if string(detected) != cfg.Engine {
		return errors.Newf(errors.ErrorTypeEngineMismatch,
			"the provided table uses the %s engine, but the process is configured for %s; "+
				"set engine to %s to load it", detected, cfg.Engine, detected)
	}
	return nil
}

// Build constructs a table for the given engine from an ordered column list
// and row-major values. File readers use it to materialize into the
// configured engine.
func Build(engine Engine, cols []string, rows [][]interface{}) (Table, error) {
	switch engine {
	case EngineMem:
		data := make(map[string][]interface{}, len(cols))
		for _, col := range cols {
			data[col] = make([]interface{}, 0, len(rows))
		}
		for i, row := range rows {
			if len(row) != len(cols) {
				return nil, errors.Newf(errors.ErrorTypeConversion,
					"row %d has %d values, expected %d", i, len(row), len(cols))
			}
			for j, col := range cols {
				data[col] = append(data[col], row[j])
			}
		}
		return NewMemTable(cols, data)

	case EngineRecords:
		recs := make([]map[string]interface{}, len(rows))
		for i, row := range rows {
			if len(row) != len(cols) {
				return nil, errors.Newf(errors.ErrorTypeConversion,
					"row %d has %d values, expected %d", i, len(row), len(cols))
			}
			rec := make(map[string]interface{}, len(cols))
			for j, col := range cols {
				rec[col] = row[j]
			}
			recs[i] = rec
		}
		return newRecordTableOrdered(cols, recs), nil

	case EngineArrow:
		return newArrowTableFromRows(cols, rows)

	default:
		return nil, errors.Newf(errors.ErrorTypeEngine, "unknown engine %q", engine)
	}
}
