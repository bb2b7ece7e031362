package engine

import (
	"testing"

	"github.com/vegasq/datadeck/dataset"
)

func TestEvaluate_StringOperators(t *testing.T) {
	tests := []struct {
		name        string
		cell        dataset.Value
		op          Operator
		filterValue any
		want        bool
	}{
		{"equals same case", dataset.Text("North"), OpEquals, "North", true},
		{"equals is case insensitive", dataset.Text("North"), OpEquals, "north", true},
		{"equals mismatch", dataset.Text("North"), OpEquals, "South", false},
		{"equals number against numeric text", dataset.Number(30), OpEquals, "30", true},
		{"equals number against json number", dataset.Number(30), OpEquals, float64(30), true},
		{"equals null matches empty string", dataset.Null(), OpEquals, "", true},
		{"notEquals mismatch", dataset.Text("North"), OpNotEquals, "South", true},
		{"notEquals same value", dataset.Text("North"), OpNotEquals, "NORTH", false},
		{"contains substring", dataset.Text("Northeast"), OpContains, "east", true},
		{"contains is case insensitive", dataset.Text("Northeast"), OpContains, "EAST", true},
		{"contains missing substring", dataset.Text("North"), OpContains, "west", false},
		{"contains on null cell", dataset.Null(), OpContains, "x", false},
		{"contains empty needle matches", dataset.Text("North"), OpContains, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluate(tt.cell, tt.op, tt.filterValue); got != tt.want {
				t.Errorf("evaluate(%v, %v, %v) = %v, want %v", tt.cell, tt.op, tt.filterValue, got, tt.want)
			}
		})
	}
}

func TestEvaluate_NumericOperators(t *testing.T) {
	tests := []struct {
		name        string
		cell        dataset.Value
		op          Operator
		filterValue any
		want        bool
	}{
		{"gt true", dataset.Number(35), OpGreaterThan, float64(30), true},
		{"gt false", dataset.Number(25), OpGreaterThan, float64(30), false},
		{"gt equal is false", dataset.Number(30), OpGreaterThan, float64(30), false},
		{"lt true", dataset.Number(25), OpLessThan, float64(30), true},
		{"gte at boundary", dataset.Number(30), OpGreaterOrEqual, float64(30), true},
		{"lte at boundary", dataset.Number(30), OpLessOrEqual, float64(30), true},
		{"numeric text coerces", dataset.Text("42"), OpGreaterThan, "40", true},
		{"string filter value coerces", dataset.Number(42), OpLessThan, "50", true},

		// Failed coercions make the comparison false, never an error.
		{"unparseable cell", dataset.Text("abc"), OpGreaterThan, float64(1), false},
		{"unparseable cell lte", dataset.Text("abc"), OpLessOrEqual, float64(1), false},
		{"unparseable filter value", dataset.Number(5), OpGreaterThan, "abc", false},
		{"null cell", dataset.Null(), OpGreaterThan, float64(-1), false},
		{"null filter value", dataset.Number(5), OpLessThan, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluate(tt.cell, tt.op, tt.filterValue); got != tt.want {
				t.Errorf("evaluate(%v, %v, %v) = %v, want %v", tt.cell, tt.op, tt.filterValue, got, tt.want)
			}
		})
	}
}

func TestParseOperator(t *testing.T) {
	valid := []string{"equals", "notEquals", "contains", "gt", "lt", "gte", "lte"}
	for _, op := range valid {
		if _, err := ParseOperator(op); err != nil {
			t.Errorf("ParseOperator(%q) error = %v", op, err)
		}
	}

	invalid := []string{"", "eq", "EQUALS", "like", "between", "always"}
	for _, op := range invalid {
		if _, err := ParseOperator(op); err == nil {
			t.Errorf("ParseOperator(%q) should fail", op)
		}
	}
}

func TestMatchesAll(t *testing.T) {
	row := dataset.Row{
		"region": dataset.Text("North"),
		"sales":  dataset.Number(100),
	}

	tests := []struct {
		name    string
		filters []Filter
		want    bool
	}{
		{"empty filter list keeps row", nil, true},
		{"single passing", []Filter{{Column: "region", Operator: OpEquals, Value: "north"}}, true},
		{"all must pass", []Filter{
			{Column: "region", Operator: OpEquals, Value: "north"},
			{Column: "sales", Operator: OpGreaterThan, Value: float64(50)},
		}, true},
		{"one failing fails the row", []Filter{
			{Column: "region", Operator: OpEquals, Value: "north"},
			{Column: "sales", Operator: OpGreaterThan, Value: float64(200)},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesAll(row, tt.filters); got != tt.want {
				t.Errorf("matchesAll() = %v, want %v", got, tt.want)
			}
		})
	}
}
