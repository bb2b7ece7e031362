// Package engine implements the deterministic query operations over the
// currently loaded dataset: filtered/sorted/paginated row queries, per-column
// descriptive statistics, categorical value distributions, grouped
// aggregates, and data samples.
//
// Every operation is a pure function over the table snapshot it reads from
// the store: it performs no I/O, mutates nothing, and returns a fresh result
// object, so identical calls against an unchanged table yield identical
// results.
package engine

import (
	"math"

	"github.com/vegasq/datadeck/dataset"
)

// Engine exposes the query operations over a dataset store.
type Engine struct {
	store *dataset.Store
}

// New creates an engine reading from store.
func New(store *dataset.Store) *Engine {
	return &Engine{store: store}
}

// defaultLimit is the page size used when a request leaves limit unset.
const defaultLimit = 50

// round2 rounds to 2 decimal places. All computed numeric outputs
// (statistics, aggregate values, percentages) pass through it.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Sample is the data-sample response: the table shape plus its first rows.
type Sample struct {
	Headers     []string                      `json:"headers"`
	Rows        []dataset.Row                 `json:"rows"`
	TotalRows   int                           `json:"totalRows"`
	ColumnTypes map[string]dataset.ColumnType `json:"columnTypes"`
}

// defaultSampleRows is returned when a sample request leaves numRows unset.
const defaultSampleRows = 10

// DataSample returns the table's headers, column types, total row count, and
// its first numRows rows (default 10) in insertion order.
func (e *Engine) DataSample(numRows int) (*Sample, error) {
	tbl, err := e.store.Current()
	if err != nil {
		return nil, err
	}

	n := numRows
	if n <= 0 {
		n = defaultSampleRows
	}
	if n > len(tbl.Rows) {
		n = len(tbl.Rows)
	}

	return &Sample{
		Headers:     tbl.Headers,
		Rows:        tbl.Rows[:n],
		TotalRows:   tbl.TotalRows,
		ColumnTypes: tbl.ColumnTypes,
	}, nil
}
