package normalization

import (
	"fmt"
	"strings"
)

// SchemaError reports missing required columns. It is fatal: no row
// processing happens after it.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// RowError describes one rejected input row. Row is the 1-based index of
// the data row in the source file, excluding the header.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// QualityError reports a file rejected by the validity gate: fewer than the
// minimum percentage of rows parsed cleanly. Row errors are aggregated and
// reported together, never one at a time.
type QualityError struct {
	ValidPercent float64
	MinPercent   float64
	RowErrors    []RowError
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("only %.1f%% of rows are valid (minimum required: %.1f%%)",
		e.ValidPercent, e.MinPercent)
}
