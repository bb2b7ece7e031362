package engine

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vegasq/datadeck/dataset"
)

// QueryRequest describes a row query: optional filters, a column
// projection, pagination, and an optional sort.
type QueryRequest struct {
	Filters   []Filter `json:"filters,omitempty"`
	Columns   []string `json:"columns,omitempty"`
	Limit     int      `json:"limit,omitempty"`  // default 50
	Offset    int      `json:"offset,omitempty"` // default 0
	SortBy    string   `json:"sortBy,omitempty"`
	SortOrder string   `json:"sortOrder,omitempty"` // "asc" (default) or "desc"
}

// QueryResult is one page of matching rows. TotalMatched counts the rows
// after filtering but before pagination; Columns is the post-projection
// header list.
type QueryResult struct {
	Rows         []dataset.Row `json:"rows"`
	TotalMatched int           `json:"totalMatched"`
	Columns      []string      `json:"columns"`
}

// Query runs the row-query pipeline in fixed order: filter, sort, count,
// paginate, project. The operation is pure; the stored table is never
// modified.
func (e *Engine) Query(req QueryRequest) (*QueryResult, error) {
	tbl, err := e.store.Current()
	if err != nil {
		return nil, err
	}

	for _, f := range req.Filters {
		if !tbl.HasColumn(f.Column) {
			return nil, tbl.UnknownColumn(f.Column)
		}
		if _, err := ParseOperator(string(f.Operator)); err != nil {
			return nil, err
		}
	}
	desc, err := parseSortOrder(req.SortOrder)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	// Filter.
	matched := make([]dataset.Row, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		if matchesAll(row, req.Filters) {
			matched = append(matched, row)
		}
	}

	// Sort. A sortBy that names no valid header leaves insertion order.
	if req.SortBy != "" && tbl.HasColumn(req.SortBy) {
		sortRows(matched, req.SortBy, desc)
	}

	// Count before pagination.
	total := len(matched)

	// Paginate.
	page := paginate(matched, offset, limit)

	// Project.
	columns := projectColumns(tbl.Headers, req.Columns)
	rows := make([]dataset.Row, len(page))
	for i, row := range page {
		rows[i] = projectRow(row, columns)
	}

	return &QueryResult{Rows: rows, TotalMatched: total, Columns: columns}, nil
}

// parseSortOrder validates a sortOrder literal; empty means ascending.
func parseSortOrder(s string) (desc bool, err error) {
	switch s {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, fmt.Errorf("unknown sort order %q (valid: asc, desc)", s)
	}
}

// sortRows stable-sorts rows by column. Null cells always sort last, in
// both directions: desc reverses the comparison between present values,
// never the null rule. Two number cells compare numerically; any other
// pair compares by collated string form, so numeric-looking text in a
// text-typed column keeps lexicographic order.
func sortRows(rows []dataset.Row, column string, desc bool) {
	c := collate.New(language.English)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][column], rows[j][column]

		if a.IsNull() || b.IsNull() {
			return !a.IsNull() && b.IsNull()
		}

		var cmp int
		if a.Kind() == dataset.KindNumber && b.Kind() == dataset.KindNumber {
			an, _ := a.Number()
			bn, _ := b.Number()
			switch {
			case an < bn:
				cmp = -1
			case an > bn:
				cmp = 1
			}
		} else {
			cmp = c.CompareString(a.String(), b.String())
		}

		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// paginate slices rows to [offset, offset+limit).
func paginate(rows []dataset.Row, offset, limit int) []dataset.Row {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// projectColumns resolves a requested column list against the table headers,
// preserving header order. Unknown requested names are silently dropped; an
// empty request selects all headers.
func projectColumns(headers, requested []string) []string {
	if len(requested) == 0 {
		return headers
	}
	want := make(map[string]bool, len(requested))
	for _, c := range requested {
		want[c] = true
	}
	out := make([]string, 0, len(requested))
	for _, h := range headers {
		if want[h] {
			out = append(out, h)
		}
	}
	return out
}

// projectRow emits a fresh row holding only the given columns.
func projectRow(row dataset.Row, columns []string) dataset.Row {
	out := make(dataset.Row, len(columns))
	for _, c := range columns {
		out[c] = row[c]
	}
	return out
}
