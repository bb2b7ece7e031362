package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vegasq/datadeck/dataset"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEquals         Operator = "equals"
	OpNotEquals      Operator = "notEquals"
	OpContains       Operator = "contains"
	OpGreaterThan    Operator = "gt"
	OpLessThan       Operator = "lt"
	OpGreaterOrEqual Operator = "gte"
	OpLessOrEqual    Operator = "lte"
)

// ParseOperator validates an operator literal. Anything outside the seven
// known operators is rejected here, at the boundary, rather than falling
// through to a default comparison.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpEquals, OpNotEquals, OpContains,
		OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operator %q (valid: equals, notEquals, contains, gt, lt, gte, lte)", s)
	}
}

// Filter is a single (column, operator, value) condition. A list of filters
// is AND-combined: a row passes only when every condition holds.
//
// Value is decoded from JSON, so it may arrive as a string, a number, a
// bool, or null; both comparison paths coerce it explicitly.
type Filter struct {
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// evaluate applies one condition to a cell. Operators are assumed valid;
// callers reject unknown literals via ParseOperator first.
//
// equals/notEquals/contains compare string forms case-insensitively (a null
// cell stringifies to ""). The ordered operators compare numeric coercions;
// when either side fails to coerce the comparison is false.
func evaluate(cell dataset.Value, op Operator, filterValue any) bool {
	switch op {
	case OpEquals:
		return strings.EqualFold(cell.String(), filterString(filterValue))
	case OpNotEquals:
		return !strings.EqualFold(cell.String(), filterString(filterValue))
	case OpContains:
		return strings.Contains(
			strings.ToLower(cell.String()),
			strings.ToLower(filterString(filterValue)),
		)
	case OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual:
		left, lok := cell.Number()
		right, rok := filterNumber(filterValue)
		if !lok || !rok {
			// Failed coercion in a numeric context: the comparison fails.
			return false
		}
		switch op {
		case OpGreaterThan:
			return left > right
		case OpLessThan:
			return left < right
		case OpGreaterOrEqual:
			return left >= right
		default:
			return left <= right
		}
	default:
		return false
	}
}

// matchesAll reports whether row satisfies every filter. An empty filter
// list keeps the row.
func matchesAll(row dataset.Row, filters []Filter) bool {
	for _, f := range filters {
		if !evaluate(row[f.Column], f.Operator, f.Value) {
			return false
		}
	}
	return true
}

// filterString returns the string form of a decoded JSON filter value.
func filterString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// filterNumber reports the numeric coercion of a decoded JSON filter value.
func filterNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case int:
		return float64(val), true
	default:
		return 0, false
	}
}
