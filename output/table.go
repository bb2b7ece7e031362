package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/datadeck/dataset"
)

// TableFormatter renders rows as an aligned terminal table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the rows with a header in the given column order.
// Null cells render as empty.
func (t *TableFormatter) Format(columns []string, rows []dataset.Row) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = row[col].String()
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
