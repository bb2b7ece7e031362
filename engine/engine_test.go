package engine

import (
	"fmt"
	"testing"

	"github.com/vegasq/datadeck/dataset"
)

func TestDataSample(t *testing.T) {
	records := make([][]string, 25)
	for i := range records {
		records[i] = []string{fmt.Sprintf("row%d", i)}
	}
	tbl, err := dataset.Build("big.csv", []string{"name"}, records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	store := dataset.NewStore()
	store.Load(tbl)
	eng := New(store)

	tests := []struct {
		name     string
		numRows  int
		wantRows int
	}{
		{"default is 10", 0, 10},
		{"explicit request", 5, 5},
		{"capped at table size", 100, 25},
		{"negative falls back to default", -3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample, err := eng.DataSample(tt.numRows)
			if err != nil {
				t.Fatalf("DataSample() error = %v", err)
			}
			if len(sample.Rows) != tt.wantRows {
				t.Errorf("len(Rows) = %d, want %d", len(sample.Rows), tt.wantRows)
			}
			if sample.TotalRows != 25 {
				t.Errorf("TotalRows = %d, want 25", sample.TotalRows)
			}
			if sample.Rows[0]["name"].String() != "row0" {
				t.Errorf("samples should start at the first row, got %v", sample.Rows[0]["name"])
			}
		})
	}
}

func TestDataSample_NoData(t *testing.T) {
	eng := New(dataset.NewStore())
	if _, err := eng.DataSample(5); err == nil {
		t.Error("DataSample() with no table should fail")
	}
}
