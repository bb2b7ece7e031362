package loader

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/datadeck/dataset"
)

// FromExcel parses the first sheet of an .xlsx workbook. The first row is
// the header row, same blank-header rule as CSV.
func FromExcel(r io.Reader, fileName string, opts Options) (*dataset.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: workbook has no sheets", fileName)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, dataset.ErrEmptyDataset)
	}

	records := rows[1:]
	if maxRows := opts.maxRows(); len(records) > maxRows {
		return nil, fmt.Errorf("%s: too many rows (limit %d)", fileName, maxRows)
	}

	return dataset.Build(fileName, cleanHeaders(rows[0]), records)
}
