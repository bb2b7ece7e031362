// Package output provides formatters for rendering query results.
//
// Currently supported formats:
//   - JSON Lines: one JSON object per row
//   - CSV: comma-separated values with a header row
//   - Table: aligned terminal table
//
// Formatters take the result's explicit column order so every format
// reproduces the projection order of the query, not map-key order.
//
// Example usage:
//
//	formatter := output.NewTableFormatter(os.Stdout)
//	if err := formatter.Format(result.Columns, result.Rows); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/datadeck/dataset"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes rows in the formatter's specific format, emitting
	// columns in the given order.
	Format(columns []string, rows []dataset.Row) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
