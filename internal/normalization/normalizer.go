// Package normalization turns raw tabular trade exports into the canonical
// trade table the rule evaluators consume.
package normalization

import (
	"fmt"
	"strconv"
	"strings"

	"tradecheck/internal/domain"
	"tradecheck/internal/observability"
)

// Required column headers. These exact strings are the only externally
// binding contract of the input format.
var RequiredColumns = []string{
	"Open Time",
	"Close Time",
	"Position ID",
	"Side",
	"Instrument",
	"Lots",
	"Open Price",
	"Close Price",
}

// Optional columns recognized when present.
const (
	ColumnStopLoss   = "Stop Loss"
	ColumnTakeProfit = "Take Profit"
)

// DefaultMinValidPercent is the quality gate: below this share of valid
// rows the whole file is rejected.
const DefaultMinValidPercent = 95.0

// Result is the outcome of normalizing one file. Dropped lists the rows
// that failed to parse when the file as a whole still cleared the gate.
type Result struct {
	Trades  []*domain.Trade
	Dropped []RowError
	// SwappedRows counts otherwise-valid rows whose open and close times
	// arrived reversed and were swapped rather than rejected.
	SwappedRows int
}

// Normalizer validates and parses raw trade rows.
type Normalizer struct {
	minValidPercent float64
}

// NewNormalizer creates a Normalizer with the default 95% quality gate.
func NewNormalizer() *Normalizer {
	return &Normalizer{minValidPercent: DefaultMinValidPercent}
}

// WithMinValidPercent overrides the quality gate threshold.
func (n *Normalizer) WithMinValidPercent(pct float64) *Normalizer {
	n.minValidPercent = pct
	return n
}

// Normalize parses header+rows into canonical trades.
//
// Missing required columns abort with *SchemaError. A file where fewer
// than the gate percentage of rows parse aborts with *QualityError.
// Otherwise invalid rows are dropped and reported in Result.Dropped.
// Rows with open time after close time are swapped, not rejected.
func (n *Normalizer) Normalize(header []string, rows [][]string) (*Result, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	if len(rows) == 0 {
		return nil, &QualityError{
			ValidPercent: 0,
			MinPercent:   n.minValidPercent,
			RowErrors:    []RowError{{Row: 0, Reason: "no data rows"}},
		}
	}

	result := &Result{}
	for i, row := range rows {
		trade, swapped, err := parseRow(index, row)
		if err != nil {
			result.Dropped = append(result.Dropped, RowError{Row: i + 1, Reason: err.Error()})
			observability.RecordRowDropped("parse")
			continue
		}
		if swapped {
			result.SwappedRows++
			observability.RecordTimesSwapped()
		}
		result.Trades = append(result.Trades, trade)
		observability.RecordRowNormalized()
	}

	validPercent := float64(len(result.Trades)) / float64(len(rows)) * 100
	if validPercent < n.minValidPercent {
		return nil, &QualityError{
			ValidPercent: validPercent,
			MinPercent:   n.minValidPercent,
			RowErrors:    result.Dropped,
		}
	}

	return result, nil
}

func parseRow(index map[string]int, row []string) (*domain.Trade, bool, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	positionID := field("Position ID")
	if positionID == "" {
		return nil, false, fmt.Errorf("missing position id")
	}

	instrument := field("Instrument")
	if instrument == "" {
		return nil, false, fmt.Errorf("missing instrument")
	}

	side := domain.Side(strings.ToUpper(field("Side")))
	if side != domain.SideBuy && side != domain.SideSell {
		return nil, false, fmt.Errorf("invalid side %q", field("Side"))
	}

	openTime, err := parseTimestamp(field("Open Time"))
	if err != nil {
		return nil, false, fmt.Errorf("open time: %w", err)
	}
	closeTime, err := parseTimestamp(field("Close Time"))
	if err != nil {
		return nil, false, fmt.Errorf("close time: %w", err)
	}

	lots, err := parsePositive("lots", field("Lots"))
	if err != nil {
		return nil, false, err
	}
	openPrice, err := parsePositive("open price", field("Open Price"))
	if err != nil {
		return nil, false, err
	}
	closePrice, err := parsePositive("close price", field("Close Price"))
	if err != nil {
		return nil, false, err
	}

	// Reversed timestamps are a known export quirk; preserve the row.
	swapped := false
	if openTime.After(closeTime) {
		openTime, closeTime = closeTime, openTime
		swapped = true
	}

	trade := &domain.Trade{
		PositionID:      positionID,
		Instrument:      instrument,
		Side:            side,
		OpenTime:        openTime,
		CloseTime:       closeTime,
		Lots:            lots,
		OpenPrice:       openPrice,
		ClosePrice:      closePrice,
		DurationSeconds: closeTime.Sub(openTime).Seconds(),
	}

	if _, ok := index[ColumnStopLoss]; ok {
		trade.StopLoss = parseOptionalLevel(field(ColumnStopLoss))
	}
	if _, ok := index[ColumnTakeProfit]; ok {
		trade.TakeProfit = parseOptionalLevel(field(ColumnTakeProfit))
	}

	return trade, swapped, nil
}

func parsePositive(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", name, v)
	}
	return v, nil
}

// parseOptionalLevel maps "-" and unparsable text to absent, never zero.
func parseOptionalLevel(raw string) *float64 {
	if raw == "" || raw == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
