package market

import (
	"math"

	"tradecheck/internal/domain"
)

// Risk is the monetary exposure of a single trade derived from its
// stop-loss distance.
type Risk struct {
	Dollars float64
	Percent float64 // of account equity
}

// TradeRisk computes the risk a trade carries at its stop loss. The bool is
// false when the trade has no usable stop loss (absent or zero), meaning
// the risk is undefined and the trade must be excluded from risk metrics,
// never treated as zero risk. Equity must be positive.
func (c *Catalog) TradeRisk(t *domain.Trade, equity float64) (Risk, bool) {
	if !t.HasStopLoss() {
		return Risk{}, false
	}

	vpp, _ := c.ValuePerPoint(t.Instrument)
	distance := math.Abs(t.OpenPrice - *t.StopLoss)

	// The point value table is quoted per 0.01 lot, hence the 100 factor.
	dollars := distance * t.Lots * vpp * 100

	return Risk{
		Dollars: dollars,
		Percent: dollars / equity * 100,
	}, true
}

// MarginRequired returns the margin a position of the given size consumes
// at the given price, using the standard contract size.
func MarginRequired(lots, price, leverage float64) float64 {
	return lots * StandardContractSize * price / leverage
}

// NotionalVolume returns the traded currency exposure of a position:
// |lots| x contract size x price, with the contract size resolved from the
// instrument's base symbol.
func (c *Catalog) NotionalVolume(lots float64, instrument string, price float64) float64 {
	return math.Abs(lots) * c.ContractSize(instrument) * price
}
