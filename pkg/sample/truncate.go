package sample

import (
	"unicode/utf8"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
)

// TruncateColumns elides long textual cells for compact serialization.
// The decision is column-level, not cell-level: a column is truncated only
// when its first value is a string longer than maxWidth characters, in
// which case every string value in the column is cut to its first
// maxWidth-3 characters plus a trailing "...". A column with a short first
// value is never truncated even if later values are long; downstream
// consumers depend on this exact behavior.
func TruncateColumns(t frame.Table, maxWidth int, cfg *config.Config) (frame.Table, error) {
	engine, err := frame.Detect(t)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeUnsupported,
			"cannot truncate table with unrecognized backend")
	}

	if engine == frame.EngineArrow && !cfg.EnableColumnar {
		return nil, errors.New(errors.ErrorTypeDependency,
			"columnar support is disabled; enable it to truncate arrow tables")
	}

	out := t.Clone()
	if out.NumRows() == 0 {
		return out, nil
	}

	for _, col := range t.Columns() {
		values, err := out.Column(col)
		if err != nil {
			return nil, err
		}

		first, ok := values[0].(string)
		if !ok || utf8.RuneCountInString(first) <= maxWidth {
			continue
		}

		truncated := make([]interface{}, len(values))
		for i, v := range values {
			if s, isStr := v.(string); isStr {
				truncated[i] = elide(s, maxWidth)
			} else {
				truncated[i] = v
			}
		}

		out, err = out.WithColumn(col, truncated)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// elide cuts s to its first maxWidth-3 characters and appends the ellipsis
// marker. Widths count runes, not bytes, so multibyte text is never cut
// mid-character.
func elide(s string, maxWidth int) string {
	cut := maxWidth - 3
	if runes := []rune(s); len(runes) > cut {
		s = string(runes[:cut])
	}
	return s + "..."
}
