package domain

import "time"

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite returns the other trade direction.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Trade is one row of the canonical trade table. Trades are immutable once
// normalized; evaluators only read them.
//
// StopLoss and TakeProfit are nil when the source file carried "-" or
// unparsable text. A nil level means "undefined", never zero.
type Trade struct {
	PositionID string
	Instrument string
	Side       Side
	OpenTime   time.Time // UTC
	CloseTime  time.Time // UTC, >= OpenTime after normalization
	Lots       float64
	OpenPrice  float64
	ClosePrice float64
	StopLoss   *float64
	TakeProfit *float64

	// DurationSeconds is derived at normalization (close - open, post swap)
	// and never trusted from input.
	DurationSeconds float64
}

// HasStopLoss reports whether the trade carries a usable stop loss.
// A zero stop loss is treated as undefined, same as absent.
func (t *Trade) HasStopLoss() bool {
	return t.StopLoss != nil && *t.StopLoss != 0
}

// HasTakeProfit reports whether the trade carries a take profit level.
func (t *Trade) HasTakeProfit() bool {
	return t.TakeProfit != nil
}

// OpenAt reports whether the trade was open at instant ts: opened at or
// before ts and still open strictly after it.
func (t *Trade) OpenAt(ts time.Time) bool {
	return !t.OpenTime.After(ts) && t.CloseTime.After(ts)
}

// OpenDate returns the UTC calendar date of the trade open.
func (t *Trade) OpenDate() string {
	return t.OpenTime.UTC().Format("2006-01-02")
}

// DistinctTradingDays counts distinct UTC calendar dates with at least one
// trade opened.
func DistinctTradingDays(trades []*Trade) int {
	days := make(map[string]struct{}, len(trades))
	for _, t := range trades {
		days[t.OpenDate()] = struct{}{}
	}
	return len(days)
}
