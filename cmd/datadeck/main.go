package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vegasq/datadeck/dataset"
	"github.com/vegasq/datadeck/engine"
	"github.com/vegasq/datadeck/loader"
	"github.com/vegasq/datadeck/output"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, "; ")
}

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

var (
	formatFlag  = flag.String("f", "table", "Output format: table, json, csv")
	schemaFlag  = flag.Bool("schema", false, "Show column names and inferred types instead of data")
	statsFlag   = flag.String("stats", "", "Show statistics for the named column")
	valuesFlag  = flag.String("values", "", "Show the value distribution of the named column")
	groupFlag   = flag.String("group", "", "Group rows by the named column (use with -agg and -op)")
	aggFlag     = flag.String("agg", "", "Column to aggregate per group")
	opFlag      = flag.String("op", "sum", "Aggregate operation: sum, avg, count, min, max")
	columnsFlag = flag.String("columns", "", "Comma-separated columns to project")
	sortFlag    = flag.String("sort", "", "Column to sort by")
	orderFlag   = flag.String("order", "asc", "Sort order: asc, desc")
	limitFlag   = flag.Int("limit", 0, "Limit number of result rows (0 = operation default)")
	offsetFlag  = flag.Int("offset", 0, "Skip this many rows before the page")
	filterFlags multiFlag
)

func main() {
	flag.Var(&filterFlags, "filter", "Filter condition \"column op value\" (repeatable; op: equals, notEquals, contains, gt, lt, gte, lte)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.csv|file.xlsx|file.parquet>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Explore a tabular dataset: filter and page rows, compute column\n")
		fmt.Fprintf(os.Stderr, "statistics, value distributions, and grouped aggregates.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s sales.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --schema sales.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -stats revenue sales.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -values region sales.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -group region -agg revenue -op sum sales.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -filter \"region equals North\" -sort revenue -order desc sales.csv\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing data file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	if *limitFlag < 0 || *offsetFlag < 0 {
		fmt.Fprintf(os.Stderr, "Error: -limit and -offset must be non-negative\n")
		os.Exit(1)
	}

	tbl, err := loader.FromFile(flag.Arg(0), loader.Options{})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", flag.Arg(0))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	store := dataset.NewStore()
	store.Load(tbl)
	eng := engine.New(store)

	formatter, err := newFormatter(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	columns, rows, err := run(eng, tbl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := formatter.Format(columns, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to one engine operation based on the mode flags and
// renders its result as columns plus rows for the formatter.
func run(eng *engine.Engine, tbl *dataset.Table) ([]string, []dataset.Row, error) {
	switch {
	case *schemaFlag:
		return schemaRows(tbl)

	case *statsFlag != "":
		stats, err := eng.ColumnStats(*statsFlag)
		if err != nil {
			return nil, nil, err
		}
		return statsRows(stats)

	case *valuesFlag != "":
		dist, err := eng.ColumnValues(*valuesFlag, *limitFlag)
		if err != nil {
			return nil, nil, err
		}
		return distributionRows(dist)

	case *groupFlag != "":
		if *aggFlag == "" {
			return nil, nil, fmt.Errorf("-group requires -agg")
		}
		result, err := eng.Aggregate(engine.AggregateRequest{
			GroupBy:         *groupFlag,
			AggregateColumn: *aggFlag,
			Operation:       *opFlag,
			SortOrder:       *orderFlag,
			Limit:           *limitFlag,
		})
		if err != nil {
			return nil, nil, err
		}
		return aggregateRows(result)

	default:
		filters, err := parseFilters(filterFlags)
		if err != nil {
			return nil, nil, err
		}
		var projection []string
		if *columnsFlag != "" {
			for _, c := range strings.Split(*columnsFlag, ",") {
				projection = append(projection, strings.TrimSpace(c))
			}
		}
		result, err := eng.Query(engine.QueryRequest{
			Filters:   filters,
			Columns:   projection,
			Limit:     *limitFlag,
			Offset:    *offsetFlag,
			SortBy:    *sortFlag,
			SortOrder: *orderFlag,
		})
		if err != nil {
			return nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "# %d of %d matching rows\n", len(result.Rows), result.TotalMatched)
		return result.Columns, result.Rows, nil
	}
}

// parseFilters turns "column op value" strings into filter conditions.
func parseFilters(raw []string) ([]engine.Filter, error) {
	filters := make([]engine.Filter, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, " ", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid filter %q (expected \"column op value\")", r)
		}
		op, err := engine.ParseOperator(parts[1])
		if err != nil {
			return nil, err
		}
		filters = append(filters, engine.Filter{Column: parts[0], Operator: op, Value: parts[2]})
	}
	return filters, nil
}

func newFormatter(format string) (output.Formatter, error) {
	switch format {
	case "table":
		return output.NewTableFormatter(os.Stdout), nil
	case "json", "jsonl":
		return output.NewJSONFormatter(os.Stdout), nil
	case "csv":
		return output.NewCSVFormatter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: table, json, csv)", format)
	}
}

func schemaRows(tbl *dataset.Table) ([]string, []dataset.Row, error) {
	fmt.Fprintf(os.Stderr, "# %s: %d rows\n", tbl.FileName, tbl.TotalRows)
	rows := make([]dataset.Row, len(tbl.Headers))
	for i, h := range tbl.Headers {
		rows[i] = dataset.Row{
			"column": dataset.Text(h),
			"type":   dataset.Text(string(tbl.ColumnTypes[h])),
		}
	}
	return []string{"column", "type"}, rows, nil
}

func statsRows(stats *engine.ColumnStats) ([]string, []dataset.Row, error) {
	numeric := func(p *float64) dataset.Value {
		if p == nil {
			return dataset.Null()
		}
		return dataset.Number(*p)
	}
	entries := []struct {
		name  string
		value dataset.Value
	}{
		{"count", dataset.Number(float64(stats.Count))},
		{"nullCount", dataset.Number(float64(stats.NullCount))},
		{"uniqueCount", dataset.Number(float64(stats.UniqueCount))},
		{"min", numeric(stats.Min)},
		{"max", numeric(stats.Max)},
		{"mean", numeric(stats.Mean)},
		{"median", numeric(stats.Median)},
		{"stdDev", numeric(stats.StdDev)},
	}
	rows := make([]dataset.Row, len(entries))
	for i, e := range entries {
		rows[i] = dataset.Row{
			"statistic": dataset.Text(e.name),
			"value":     e.value,
		}
	}
	return []string{"statistic", "value"}, rows, nil
}

func distributionRows(dist *engine.ValueDistribution) ([]string, []dataset.Row, error) {
	fmt.Fprintf(os.Stderr, "# %s: %d distinct values\n", dist.Column, dist.UniqueCount)
	rows := make([]dataset.Row, len(dist.Values))
	for i, v := range dist.Values {
		rows[i] = dataset.Row{
			"value":      dataset.Text(v.Value),
			"count":      dataset.Number(float64(v.Count)),
			"percentage": dataset.Number(v.Percentage),
		}
	}
	return []string{"value", "count", "percentage"}, rows, nil
}

func aggregateRows(result *engine.AggregateResult) ([]string, []dataset.Row, error) {
	fmt.Fprintf(os.Stderr, "# %s of %s by %s\n", result.Operation, result.AggregateColumn, result.GroupBy)
	rows := make([]dataset.Row, len(result.Results))
	for i, g := range result.Results {
		rows[i] = dataset.Row{
			"group": dataset.Text(g.Group),
			"value": dataset.Number(g.Value),
		}
	}
	return []string{"group", "value"}, rows, nil
}
