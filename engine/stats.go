package engine

import (
	"math"
	"sort"
)

// ColumnStats is the per-column descriptive statistics response. The five
// numeric fields are nil when the column has zero coercible numeric values —
// that signals "not a numeric column" rather than an error.
type ColumnStats struct {
	Column      string   `json:"column"`
	Count       int      `json:"count"`
	NullCount   int      `json:"nullCount"`
	UniqueCount int      `json:"uniqueCount"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Mean        *float64 `json:"mean"`
	Median      *float64 `json:"median"`
	StdDev      *float64 `json:"stdDev"`
}

// ColumnStats computes descriptive statistics over all rows of a column.
//
// Count includes every row; NullCount counts null/empty cells; UniqueCount
// counts distinct string forms with nulls pooled in one "" bucket. The
// numeric aggregates run over the cells that coerce to finite numbers:
// min/max from the sorted numeric set, arithmetic mean, median (midpoint
// average for even counts), and population standard deviation (divide by N,
// not N-1). Numeric outputs are rounded to 2 decimals.
func (e *Engine) ColumnStats(column string) (*ColumnStats, error) {
	tbl, err := e.store.Current()
	if err != nil {
		return nil, err
	}
	if !tbl.HasColumn(column) {
		return nil, tbl.UnknownColumn(column)
	}

	stats := &ColumnStats{
		Column: column,
		Count:  len(tbl.Rows),
	}

	distinct := make(map[string]struct{})
	var nums []float64
	for _, row := range tbl.Rows {
		v := row[column]
		s := v.String()
		if v.IsNull() || s == "" {
			stats.NullCount++
		}
		distinct[s] = struct{}{}
		if f, ok := v.Number(); ok {
			nums = append(nums, f)
		}
	}
	stats.UniqueCount = len(distinct)

	if len(nums) == 0 {
		return stats, nil
	}

	sort.Float64s(nums)
	stats.Min = round2p(nums[0])
	stats.Max = round2p(nums[len(nums)-1])
	stats.Mean = round2p(mean(nums))
	stats.Median = round2p(medianSorted(nums))
	stats.StdDev = round2p(stdDevPopulation(nums))

	return stats, nil
}

func round2p(f float64) *float64 {
	r := round2(f)
	return &r
}

func mean(nums []float64) float64 {
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums))
}

// medianSorted returns the middle value of an already-sorted set, averaging
// the two middle values when the count is even.
func medianSorted(nums []float64) float64 {
	n := len(nums)
	if n%2 == 0 {
		return (nums[n/2-1] + nums[n/2]) / 2
	}
	return nums[n/2]
}

// stdDevPopulation is the population standard deviation (divisor N).
func stdDevPopulation(nums []float64) float64 {
	m := mean(nums)
	sumSq := 0.0
	for _, n := range nums {
		d := n - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(nums)))
}

// ValueCount is one entry of a value distribution.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ValueDistribution is the categorical frequency response for a column,
// sorted by descending count and truncated to the requested limit.
// UniqueCount reflects all distinct values, including truncated ones.
type ValueDistribution struct {
	Column      string       `json:"column"`
	UniqueCount int          `json:"uniqueCount"`
	Values      []ValueCount `json:"values"`
}

// ColumnValues builds the frequency table of a column's string forms,
// pooling null/empty cells in a dedicated "" bucket. Entries sort by
// descending count with ties left in first-encountered order (the sort is
// stable over the insertion-ordered table); the top limit entries (default
// 50) are returned, each with percentage = count/totalRows*100 rounded to 2
// decimals.
func (e *Engine) ColumnValues(column string, limit int) (*ValueDistribution, error) {
	tbl, err := e.store.Current()
	if err != nil {
		return nil, err
	}
	if !tbl.HasColumn(column) {
		return nil, tbl.UnknownColumn(column)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	counts := make(map[string]int)
	var order []string // first-seen key order, the tie-break for equal counts
	for _, row := range tbl.Rows {
		key := row[column].String()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	values := make([]ValueCount, len(order))
	for i, key := range order {
		values[i] = ValueCount{
			Value:      key,
			Count:      counts[key],
			Percentage: round2(float64(counts[key]) / float64(tbl.TotalRows) * 100),
		}
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Count > values[j].Count
	})

	unique := len(values)
	if len(values) > limit {
		values = values[:limit]
	}

	return &ValueDistribution{
		Column:      column,
		UniqueCount: unique,
		Values:      values,
	}, nil
}
