package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// inferSampleSize caps how many records type inference inspects.
const inferSampleSize = 100

// Date-shape patterns, anchored at the start of the trimmed cell:
// ISO (2024-01-31...), US slash (1/31/24...), and dash (1-31-24...).
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}`),
	regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}`),
}

// InferColumnTypes classifies each header as number, date, or text by
// sampling up to the first 100 records.
//
// Per column: null/empty cells are skipped; a cell counts as numeric when it
// parses to a finite float, otherwise as a date when it matches one of the
// date-shape patterns. The column is number when numeric matches exceed 80%
// of the non-null sample, date when date matches exceed 80% (only checked
// after the numeric threshold fails), and text otherwise. A column whose
// sample is all null classifies as text.
//
// The scan is single-pass and order-independent; re-running it on the same
// sample is idempotent. Mixed columns can classify wrong — an accepted
// approximation of the sampling heuristic.
func InferColumnTypes(headers []string, records [][]string) map[string]ColumnType {
	sample := records
	if len(sample) > inferSampleSize {
		sample = sample[:inferSampleSize]
	}

	types := make(map[string]ColumnType, len(headers))
	for i, h := range headers {
		types[h] = inferColumn(i, sample)
	}
	return types
}

func inferColumn(index int, sample [][]string) ColumnType {
	var nonNull, numeric, date int

	for _, rec := range sample {
		if index >= len(rec) {
			continue
		}
		cell := strings.TrimSpace(rec[index])
		if cell == "" {
			continue
		}
		nonNull++
		if isFiniteNumber(cell) {
			numeric++
			continue
		}
		if looksLikeDate(cell) {
			date++
		}
	}

	if nonNull == 0 {
		return TypeText
	}
	if float64(numeric) > 0.8*float64(nonNull) {
		return TypeNumber
	}
	if float64(date) > 0.8*float64(nonNull) {
		return TypeDate
	}
	return TypeText
}

func isFiniteNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func looksLikeDate(s string) bool {
	for _, p := range datePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
