package load

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/frame"
)

// ImportFromSheetsURL imports every sheet of a Google Sheets document as a
// table, first row as header. The path importer uses the first element.
// Authentication uses the GOOGLE_SHEETS_API_KEY environment variable when
// set; otherwise the document must be publicly readable.
func ImportFromSheetsURL(ctx context.Context, url string, cfg *config.Config) ([]frame.Table, error) {
	spreadsheetID, err := spreadsheetIDFromURL(url)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if key := os.Getenv("GOOGLE_SHEETS_API_KEY"); key != "" {
		opts = append(opts, option.WithAPIKey(key))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to create sheets client")
	}

	doc, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to fetch spreadsheet")
	}

	engine := frame.Engine(cfg.Engine)
	tables := make([]frame.Table, 0, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		resp, err := svc.Spreadsheets.Values.
			Get(spreadsheetID, sheet.Properties.Title).
			Context(ctx).Do()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to fetch sheet values")
		}

		t, err := sheetValuesToTable(resp.Values, engine)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, nil
}

// spreadsheetIDFromURL extracts the document ID from a
// docs.google.com/spreadsheets URL.
func spreadsheetIDFromURL(url string) (string, error) {
	if !strings.HasPrefix(url, SheetsURLPrefix) {
		return "", errors.Newf(errors.ErrorTypeFileFormat, "not a spreadsheet URL: %q", url)
	}

	rest := strings.TrimPrefix(url, SheetsURLPrefix)
	rest = strings.TrimPrefix(rest, "d/")
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", errors.Newf(errors.ErrorTypeFileFormat, "spreadsheet URL has no document id: %q", url)
	}
	return rest, nil
}

func sheetValuesToTable(values [][]interface{}, engine frame.Engine) (frame.Table, error) {
	if len(values) == 0 {
		return frame.Build(engine, nil, nil)
	}

	cols := make([]string, len(values[0]))
	for i, v := range values[0] {
		cols[i] = formatHeader(v)
	}

	rows := make([][]interface{}, len(values)-1)
	for i, record := range values[1:] {
		row := make([]interface{}, len(cols))
		for j := range cols {
			if j < len(record) {
				if s, ok := record[j].(string); ok {
					row[j] = inferValue(s)
				} else {
					row[j] = record[j]
				}
			}
		}
		rows[i] = row
	}

	return frame.Build(engine, cols, rows)
}

func formatHeader(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
