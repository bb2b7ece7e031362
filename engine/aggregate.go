package engine

import (
	"fmt"
	"sort"
)

// AggregateOp is a per-group reduction.
type AggregateOp string

const (
	AggSum   AggregateOp = "sum"
	AggAvg   AggregateOp = "avg"
	AggCount AggregateOp = "count"
	AggMin   AggregateOp = "min"
	AggMax   AggregateOp = "max"
)

// ParseAggregateOp validates an aggregate operation literal at the boundary.
func ParseAggregateOp(s string) (AggregateOp, error) {
	switch op := AggregateOp(s); op {
	case AggSum, AggAvg, AggCount, AggMin, AggMax:
		return op, nil
	default:
		return "", fmt.Errorf("unknown aggregate operation %q (valid: sum, avg, count, min, max)", s)
	}
}

// AggregateRequest describes a grouped aggregate: partition rows by the
// string form of GroupBy, reduce AggregateColumn per group.
type AggregateRequest struct {
	GroupBy         string `json:"groupBy"`
	AggregateColumn string `json:"aggregateColumn"`
	Operation       string `json:"operation"`
	SortBy          string `json:"sortBy,omitempty"`    // "group" (default) or "value"
	SortOrder       string `json:"sortOrder,omitempty"` // "asc" (default) or "desc"
	Limit           int    `json:"limit,omitempty"`     // 0 = all groups
}

// GroupValue is one reduced group.
type GroupValue struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

// AggregateResult holds one entry per distinct group key present in the
// data; absent groups are never zero-filled.
type AggregateResult struct {
	GroupBy         string       `json:"groupBy"`
	AggregateColumn string       `json:"aggregateColumn"`
	Operation       string       `json:"operation"`
	Results         []GroupValue `json:"results"`
}

type groupAccum struct {
	count int
	nums  []float64
}

// Aggregate partitions all rows by the string form of the group column
// (nulls pool in the "" group) and reduces the aggregate column per group.
//
// sum/avg/min/max reduce over the group's finite-numeric values and yield 0
// for a group with none — an explicit output-type convention, not a null.
// count counts the group's rows regardless of numeric coercibility. Each
// value is rounded to 2 decimals; results then sort by group key (string
// comparison) or by value (numeric), ascending or descending, and are
// truncated to limit after sorting.
func (e *Engine) Aggregate(req AggregateRequest) (*AggregateResult, error) {
	tbl, err := e.store.Current()
	if err != nil {
		return nil, err
	}
	if !tbl.HasColumn(req.GroupBy) {
		return nil, tbl.UnknownColumn(req.GroupBy)
	}
	if !tbl.HasColumn(req.AggregateColumn) {
		return nil, tbl.UnknownColumn(req.AggregateColumn)
	}
	op, err := ParseAggregateOp(req.Operation)
	if err != nil {
		return nil, err
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "group"
	}
	if sortBy != "group" && sortBy != "value" {
		return nil, fmt.Errorf("unknown aggregate sortBy %q (valid: group, value)", req.SortBy)
	}
	desc, err := parseSortOrder(req.SortOrder)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*groupAccum)
	var order []string
	for _, row := range tbl.Rows {
		key := row[req.GroupBy].String()
		acc, ok := groups[key]
		if !ok {
			acc = &groupAccum{}
			groups[key] = acc
			order = append(order, key)
		}
		acc.count++
		if f, numeric := row[req.AggregateColumn].Number(); numeric {
			acc.nums = append(acc.nums, f)
		}
	}

	results := make([]GroupValue, len(order))
	for i, key := range order {
		results[i] = GroupValue{
			Group: key,
			Value: round2(reduce(op, groups[key])),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		var less bool
		if sortBy == "value" {
			less = results[i].Value < results[j].Value
		} else {
			less = results[i].Group < results[j].Group
		}
		if desc {
			return !less && !equalEntry(results[i], results[j], sortBy)
		}
		return less
	})

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	return &AggregateResult{
		GroupBy:         req.GroupBy,
		AggregateColumn: req.AggregateColumn,
		Operation:       string(op),
		Results:         results,
	}, nil
}

func equalEntry(a, b GroupValue, sortBy string) bool {
	if sortBy == "value" {
		return a.Value == b.Value
	}
	return a.Group == b.Group
}

// reduce applies the operation to one group's accumulated values.
// An empty numeric set reduces to 0 for sum, avg, min, and max.
func reduce(op AggregateOp, acc *groupAccum) float64 {
	if op == AggCount {
		return float64(acc.count)
	}
	if len(acc.nums) == 0 {
		return 0
	}
	switch op {
	case AggSum:
		return sum(acc.nums)
	case AggAvg:
		return sum(acc.nums) / float64(len(acc.nums))
	case AggMin:
		m := acc.nums[0]
		for _, n := range acc.nums[1:] {
			if n < m {
				m = n
			}
		}
		return m
	default: // AggMax
		m := acc.nums[0]
		for _, n := range acc.nums[1:] {
			if n > m {
				m = n
			}
		}
		return m
	}
}

func sum(nums []float64) float64 {
	s := 0.0
	for _, n := range nums {
		s += n
	}
	return s
}
