package normalization

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"tradecheck/internal/domain"
)

// ReadCSV reads a trade export from r and returns its header and data rows.
func ReadCSV(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports sometimes pad trailing columns

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("read csv: empty file")
	}
	return records[0], records[1:], nil
}

// ReadCSVFile reads a trade export from disk.
func ReadCSVFile(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// CanonicalHeader is the column order of canonical trade exports.
var CanonicalHeader = []string{
	"Open Time", "Close Time", "Position ID", "Side", "Instrument",
	"Lots", "Open Price", "Close Price", "Stop Loss", "Take Profit",
}

const canonicalTimeLayout = "2006-01-02 15:04:05"

// CanonicalRows renders normalized trades back into tabular form using the
// canonical header. Normalizing this output again is a no-op.
func CanonicalRows(trades []*domain.Trade) [][]string {
	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, []string{
			t.OpenTime.UTC().Format(canonicalTimeLayout),
			t.CloseTime.UTC().Format(canonicalTimeLayout),
			t.PositionID,
			string(t.Side),
			t.Instrument,
			formatFloat(t.Lots),
			formatFloat(t.OpenPrice),
			formatFloat(t.ClosePrice),
			formatLevel(t.StopLoss),
			formatLevel(t.TakeProfit),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatLevel(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}
