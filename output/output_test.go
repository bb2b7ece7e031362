package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vegasq/datadeck/dataset"
)

func sampleRows() ([]string, []dataset.Row) {
	columns := []string{"name", "age", "city"}
	rows := []dataset.Row{
		{"name": dataset.Text("alice"), "age": dataset.Number(30), "city": dataset.Text("Berlin")},
		{"name": dataset.Text("bob"), "age": dataset.Null(), "city": dataset.Text("Paris")},
	}
	return columns, rows
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	columns, rows := sampleRows()

	if err := NewCSVFormatter(&buf).Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "name,age,city" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "alice,30,Berlin" {
		t.Errorf("row 1 = %q", lines[1])
	}
	// Null cells render empty.
	if lines[2] != "bob,,Paris" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestCSVFormatter_SanitizesFormulas(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"formula", "=SUM(A1)", "'=SUM(A1)"},
		{"plus", "+1+1", "'+1+1"},
		{"at", "@cmd", "'@cmd"},
		{"pipe", "|cat", "'|cat"},
		{"plain text untouched", "hello", "hello"},
		{"negative number untouched", "-42", "-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rows := []dataset.Row{{"v": dataset.Text(tt.cell)}}
			if err := NewCSVFormatter(&buf).Format([]string{"v"}, rows); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			got := lines[1]
			// The csv writer may quote the record; strip that layer.
			got = strings.Trim(got, `"`)
			if got != tt.want {
				t.Errorf("cell = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	columns, rows := sampleRows()

	if err := NewJSONFormatter(&buf).Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if first["name"] != "alice" {
		t.Errorf("name = %v", first["name"])
	}
	if first["age"] != float64(30) {
		t.Errorf("age = %v (%T), want JSON number 30", first["age"], first["age"])
	}

	var second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2 is not valid JSON: %v", err)
	}
	if v, present := second["age"]; !present || v != nil {
		t.Errorf("null cell should encode as an explicit JSON null, got %v (present=%v)", v, present)
	}
}

func TestJSONFormatter_RestrictsColumns(t *testing.T) {
	var buf bytes.Buffer
	_, rows := sampleRows()

	if err := NewJSONFormatter(&buf).Format([]string{"name"}, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var obj map[string]interface{}
	line := strings.Split(strings.TrimSpace(buf.String()), "\n")[0]
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(obj) != 1 {
		t.Errorf("object has %d keys, want only the projected column", len(obj))
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	columns, rows := sampleRows()

	if err := NewTableFormatter(&buf).Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"name", "age", "city", "alice", "Berlin", "bob", "Paris"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatters_EmptyRows(t *testing.T) {
	formatters := map[string]Formatter{
		"csv":   NewCSVFormatter(&bytes.Buffer{}),
		"json":  NewJSONFormatter(&bytes.Buffer{}),
		"table": NewTableFormatter(&bytes.Buffer{}),
	}
	for name, f := range formatters {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			f.SetOutput(&buf)
			if err := f.Format([]string{"a", "b"}, nil); err != nil {
				t.Errorf("Format() with no rows error = %v", err)
			}
		})
	}
}
