package dataset

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ColumnType is the inferred classification of a column.
type ColumnType string

const (
	TypeText   ColumnType = "text"
	TypeNumber ColumnType = "number"
	TypeDate   ColumnType = "date"
)

// Row maps every table header to a cell value. Absent source cells are
// represented as null values, never omitted keys.
type Row map[string]Value

// Table is the authoritative in-memory dataset.
//
// Headers keep first-seen source order and are the canonical column order
// for projections. Rows keep source insertion order, which is the canonical
// order for pagination offsets. ColumnTypes is fixed once at build time.
type Table struct {
	ID          string                `json:"id"`
	FileName    string                `json:"fileName"`
	Headers     []string              `json:"headers"`
	Rows        []Row                 `json:"rows"`
	ColumnTypes map[string]ColumnType `json:"columnTypes"`
	TotalRows   int                   `json:"totalRows"`
}

// HasColumn reports whether name is one of the table's headers.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// UnknownColumn returns the unknown-column error for name, listing the
// table's valid headers.
func (t *Table) UnknownColumn(name string) error {
	return &UnknownColumnError{Column: name, Valid: t.Headers}
}

// Build creates a Table from parsed file contents: a header row and raw
// string records. Column types are inferred from a sample of the records,
// then every cell is converted to a typed value. Records shorter than the
// header row are padded with nulls; longer records are truncated.
//
// A file with zero data rows is rejected with ErrEmptyDataset.
func Build(fileName string, headers []string, records [][]string) (*Table, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("%s: no columns", fileName)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrEmptyDataset)
	}

	headers = uniqueHeaders(headers)
	types := InferColumnTypes(headers, records)

	rows := make([]Row, len(records))
	for i, rec := range records {
		row := make(Row, len(headers))
		for j, h := range headers {
			if j < len(rec) {
				row[h] = ParseCell(rec[j], types[h])
			} else {
				row[h] = Null()
			}
		}
		rows[i] = row
	}

	return &Table{
		ID:          uuid.NewString(),
		FileName:    fileName,
		Headers:     headers,
		Rows:        rows,
		ColumnTypes: types,
		TotalRows:   len(rows),
	}, nil
}

// uniqueHeaders disambiguates duplicate header names by suffixing
// repeats with their occurrence count ("amount", "amount_2", ...). A
// suffixed name that collides with another header keeps counting up until
// it is free, so the output list never contains duplicates.
func uniqueHeaders(headers []string) []string {
	used := make(map[string]bool, len(headers))
	count := make(map[string]int, len(headers))
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		count[h]++
		name := h
		if count[h] > 1 {
			name = fmt.Sprintf("%s_%d", h, count[h])
		}
		for used[name] {
			count[h]++
			name = fmt.Sprintf("%s_%d", h, count[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}
