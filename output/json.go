package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/datadeck/dataset"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line). Cell values
// encode as JSON null, number, or string per their variant; the column list
// only restricts which keys are emitted.
func (j *JSONFormatter) Format(columns []string, rows []dataset.Row) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range rows {
		obj := make(map[string]dataset.Value, len(columns))
		for _, col := range columns {
			obj[col] = row[col]
		}
		if err := encoder.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}
