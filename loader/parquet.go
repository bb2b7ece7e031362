package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/datadeck/dataset"
)

// FromParquet parses a Parquet file. Headers come from the file schema in
// declaration order; cell values are rendered to their string forms so that
// type inference and cell typing run uniformly with the text formats.
//
// Parquet requires random access, so the stream is buffered in memory —
// consistent with the engine's in-memory model.
func FromParquet(r io.Reader, fileName string, opts Options) (*dataset.Table, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet stream: %w", err)
	}

	pqFile, err := parquet.OpenFile(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Name()
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	maxRows := opts.maxRows()
	var records [][]string
	for {
		row := make(map[string]interface{})
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		rec := make([]string, len(headers))
		for i, h := range headers {
			rec[i] = formatParquetCell(row[h])
		}
		records = append(records, rec)
		if len(records) > maxRows {
			return nil, fmt.Errorf("%s: too many rows (limit %d)", fileName, maxRows)
		}
	}

	return dataset.Build(fileName, cleanHeaders(headers), records)
}

// formatParquetCell renders a decoded parquet value to its string form.
// Nil stays empty and becomes a null cell downstream.
func formatParquetCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
