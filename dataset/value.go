// Package dataset holds the in-memory table: tagged cell values, heuristic
// column type inference, and the single current-table store that every query
// operation reads from.
//
// A table is built once from parsed file contents and never mutated; a new
// upload replaces it wholesale. Engines receive the table through a Store and
// return fresh result objects.
package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the cell value variant.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

// Value is a single table cell: null, a finite number, or text.
//
// Both coercions are total: String never fails (null stringifies to ""),
// and Number reports convertibility explicitly so a failed coercion is a
// visible branch for callers rather than a NaN fallthrough.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Null returns the null cell value.
func Null() Value {
	return Value{kind: KindNull}
}

// Number returns a numeric cell value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a text cell value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the cell is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// String returns the display form of the cell. Numbers render in their
// shortest exact form ("30", not "30.000000"); null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Number reports the numeric coercion of the cell. Text cells are parsed;
// a null, an unparseable text, or a non-finite parse yields (0, false).
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the cell as JSON null, number, or string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// ParseCell converts one raw cell string into a Value. Empty and
// whitespace-only cells become null. Cells of a number-typed column that
// parse as finite numbers become Number values; everything else stays Text,
// so a mixed column keeps its stray non-numeric cells intact.
func ParseCell(raw string, colType ColumnType) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	if colType == TypeNumber {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return Number(f)
		}
	}
	return Text(s)
}
