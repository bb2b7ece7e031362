package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData is returned by Store.Current when no dataset is loaded.
// Callers should surface it as "upload a file first", not retry.
var ErrNoData = errors.New("no dataset loaded")

// ErrEmptyDataset rejects files that parse to zero data rows at load time.
var ErrEmptyDataset = errors.New("dataset contains no data rows")

// UnknownColumnError reports a reference to a column that is not one of the
// table's headers. The message names the bad column and lists the valid
// headers so a caller can correct the request.
type UnknownColumnError struct {
	Column string
	Valid  []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q (valid columns: %s)", e.Column, strings.Join(e.Valid, ", "))
}

// IsUnknownColumn reports whether err is an UnknownColumnError.
func IsUnknownColumn(err error) bool {
	var uc *UnknownColumnError
	return errors.As(err, &uc)
}
