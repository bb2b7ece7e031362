package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/vegasq/datadeck/dataset"
)

func TestFromCSV(t *testing.T) {
	input := "name,age,city\nalice,30,Berlin\nbob,25,Paris\n"

	tbl, err := FromCSV(strings.NewReader(input), "people.csv", Options{})
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}

	if tbl.FileName != "people.csv" {
		t.Errorf("FileName = %q", tbl.FileName)
	}
	if !reflect.DeepEqual(tbl.Headers, []string{"name", "age", "city"}) {
		t.Errorf("Headers = %v", tbl.Headers)
	}
	if tbl.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", tbl.TotalRows)
	}
	if tbl.ColumnTypes["age"] != dataset.TypeNumber {
		t.Errorf("age type = %q, want number", tbl.ColumnTypes["age"])
	}
	if got := tbl.Rows[0]["name"].String(); got != "alice" {
		t.Errorf("first name = %q", got)
	}
}

func TestFromCSV_TabSeparated(t *testing.T) {
	input := "name\tage\nalice\t30\n"

	tbl, err := FromCSV(strings.NewReader(input), "people.tsv", Options{})
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if !reflect.DeepEqual(tbl.Headers, []string{"name", "age"}) {
		t.Errorf("Headers = %v", tbl.Headers)
	}
	if tbl.TotalRows != 1 {
		t.Errorf("TotalRows = %d, want 1", tbl.TotalRows)
	}
}

func TestFromCSV_BlankHeaders(t *testing.T) {
	input := "name,,  \nalice,1,2\n"

	tbl, err := FromCSV(strings.NewReader(input), "data.csv", Options{})
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if !reflect.DeepEqual(tbl.Headers, []string{"name", "Column_2", "Column_3"}) {
		t.Errorf("Headers = %v, want blank headers replaced with Column_N", tbl.Headers)
	}
}

func TestFromCSV_RaggedRecords(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5\n"

	tbl, err := FromCSV(strings.NewReader(input), "data.csv", Options{})
	if err != nil {
		t.Fatalf("FromCSV() error = %v", err)
	}
	if !tbl.Rows[1]["c"].IsNull() {
		t.Error("missing trailing field should load as null")
	}
}

func TestFromCSV_Empty(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""), "empty.csv", Options{})
	if !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}
}

func TestFromCSV_HeaderOnly(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a,b\n"), "header.csv", Options{})
	if !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}
}

func TestFromCSV_RowLimit(t *testing.T) {
	input := "n\n1\n2\n3\n"

	if _, err := FromCSV(strings.NewReader(input), "big.csv", Options{MaxRows: 2}); err == nil {
		t.Error("FromCSV() should fail when the row cap is exceeded")
	}
	if _, err := FromCSV(strings.NewReader(input), "big.csv", Options{MaxRows: 3}); err != nil {
		t.Errorf("FromCSV() at the cap error = %v", err)
	}
}

func TestFromExcel(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"name", "amount"},
		{"alice", 100},
		{"bob", 250},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	tbl, err := FromExcel(buf, "book.xlsx", Options{})
	if err != nil {
		t.Fatalf("FromExcel() error = %v", err)
	}
	if !reflect.DeepEqual(tbl.Headers, []string{"name", "amount"}) {
		t.Errorf("Headers = %v", tbl.Headers)
	}
	if tbl.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", tbl.TotalRows)
	}
	if tbl.ColumnTypes["amount"] != dataset.TypeNumber {
		t.Errorf("amount type = %q, want number", tbl.ColumnTypes["amount"])
	}
}

func TestFromExcel_Garbage(t *testing.T) {
	if _, err := FromExcel(strings.NewReader("not a zip"), "bad.xlsx", Options{}); err == nil {
		t.Error("FromExcel() should fail on a non-workbook stream")
	}
}

type saleRecord struct {
	Region string  `parquet:"region"`
	Sales  float64 `parquet:"sales"`
	Active bool    `parquet:"active"`
}

func writeParquet(t *testing.T, records []saleRecord) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[saleRecord](&buf)
	if _, err := w.Write(records); err != nil {
		t.Fatalf("parquet write error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("parquet close error = %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestFromParquet(t *testing.T) {
	r := writeParquet(t, []saleRecord{
		{Region: "north", Sales: 100.5, Active: true},
		{Region: "south", Sales: 200, Active: false},
	})

	tbl, err := FromParquet(r, "sales.parquet", Options{})
	if err != nil {
		t.Fatalf("FromParquet() error = %v", err)
	}

	if !reflect.DeepEqual(tbl.Headers, []string{"region", "sales", "active"}) {
		t.Errorf("Headers = %v, want schema declaration order", tbl.Headers)
	}
	if tbl.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", tbl.TotalRows)
	}
	if tbl.ColumnTypes["sales"] != dataset.TypeNumber {
		t.Errorf("sales type = %q, want number", tbl.ColumnTypes["sales"])
	}
	if got, ok := tbl.Rows[0]["sales"].Number(); !ok || got != 100.5 {
		t.Errorf("sales[0] = %v, %v", got, ok)
	}
	if got := tbl.Rows[0]["active"].String(); got != "true" {
		t.Errorf("active[0] = %q, want true", got)
	}
}

func TestFromParquet_Garbage(t *testing.T) {
	if _, err := FromParquet(strings.NewReader("nope"), "bad.parquet", Options{}); err == nil {
		t.Error("FromParquet() should fail on a non-parquet stream")
	}
}

func TestFromReader_Dispatch(t *testing.T) {
	tests := []struct {
		fileName string
		wantErr  bool
	}{
		{"data.csv", false},
		{"data.CSV", false},
		{"data.txt", false},
		{"data.json", true},
		{"data", true},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			_, err := FromReader(strings.NewReader("a\n1\n"), tt.fileName, Options{})
			if (err != nil) != tt.wantErr {
				t.Errorf("FromReader(%q) error = %v, wantErr %v", tt.fileName, err, tt.wantErr)
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("name,age\nalice,30\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tbl, err := FromFile(path, Options{})
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if tbl.FileName != "people.csv" {
		t.Errorf("FileName = %q, want the base name", tbl.FileName)
	}
}

func TestFromFile_Missing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.csv"), Options{}); err == nil {
		t.Error("FromFile() should fail for a missing path")
	}
}
