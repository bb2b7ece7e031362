package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vegasq/datadeck/dataset"
)

// FromCSV parses delimited text. The first record is the header row; blank
// header cells are named Column_N. Records may have a variable field count —
// short records are padded with nulls downstream. Tab-separated files
// (.tsv) use a tab delimiter.
func FromCSV(r io.Reader, fileName string, opts Options) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if strings.EqualFold(filepath.Ext(fileName), ".tsv") {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", fileName, dataset.ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	maxRows := opts.maxRows()
	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
		if len(records) > maxRows {
			return nil, fmt.Errorf("%s: too many rows (limit %d)", fileName, maxRows)
		}
	}

	return dataset.Build(fileName, cleanHeaders(header), records)
}
