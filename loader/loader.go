// Package loader parses uploaded tabular files into the in-memory dataset.
//
// Three formats are supported: delimited text (CSV), Excel workbooks
// (.xlsx), and Parquet. Each parser produces the same load boundary — a
// header row plus raw string records — and hands it to dataset.Build, which
// runs type inference and cell typing uniformly regardless of the source
// format.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/datadeck/dataset"
)

// DefaultMaxRows caps how many data rows a single file may contain.
const DefaultMaxRows = 100000

// Options controls parsing limits.
type Options struct {
	MaxRows int // 0 = DefaultMaxRows
}

func (o Options) maxRows() int {
	if o.MaxRows <= 0 {
		return DefaultMaxRows
	}
	return o.MaxRows
}

// FromFile parses path into a table, dispatching on the file extension.
func FromFile(path string, opts Options) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return FromReader(f, filepath.Base(path), opts)
}

// FromReader parses the named upload into a table, dispatching on the
// extension of fileName. Returns an error for unsupported extensions.
func FromReader(r io.Reader, fileName string, opts Options) (*dataset.Table, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".tsv", ".txt":
		return FromCSV(r, fileName, opts)
	case ".xlsx":
		return FromExcel(r, fileName, opts)
	case ".parquet":
		return FromParquet(r, fileName, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q (supported: .csv, .tsv, .txt, .xlsx, .parquet)", fileName)
	}
}

// cleanHeaders trims header cells and names blank ones Column_N.
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}
