// Package sample builds compact previews of tables: representative row
// sampling plus privacy-aware truncation of long textual cells. The sample
// head is what downstream consumers see instead of the full table, so the
// rules here decide exactly how much data leaves the loading layer.
package sample

import (
	"github.com/corvus-data/corvus/pkg/frame"
)

// Sampler reduces a preview table to at most rowBudget representative rows.
// The sampling strategy is pluggable; the dataframe facade uses
// DefaultSampler unless another implementation is injected.
type Sampler interface {
	Sample(t frame.Table, rowBudget int) (frame.Table, error)
}

// DefaultSampler picks evenly-strided rows so previews of sorted or grouped
// tables still show spread rather than a single run of similar rows.
type DefaultSampler struct{}

// Sample returns at most rowBudget rows of t. Tables already within budget
// are deep-copied unchanged; larger tables are sampled with a fixed stride
// starting at the first row, keeping output deterministic.
func (DefaultSampler) Sample(t frame.Table, rowBudget int) (frame.Table, error) {
	if rowBudget <= 0 {
		return t.Head(0), nil
	}
	if t.NumRows() <= rowBudget {
		return t.Clone(), nil
	}

	engine, err := frame.Detect(t)
	if err != nil {
		return nil, err
	}

	stride := t.NumRows() / rowBudget
	rows := make([][]interface{}, 0, rowBudget)
	for i := 0; i < rowBudget; i++ {
		rows = append(rows, t.Row(i*stride))
	}

	return frame.Build(engine, t.Columns(), rows)
}
