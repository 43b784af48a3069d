package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecheck/internal/domain"
)

// Margin per trade at leverage 50 and price 1.0 is 2000 * lots dollars.

func TestMarginUsageAtThresholdPasses(t *testing.T) {
	// Two overlapping trades at 4005 each: 8010 = exactly 80.1% of 10000.
	trades := []*domain.Trade{
		mkTrade(tradeSpec{id: "P1", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:00:00Z", close: "2025-03-10T12:00:00Z",
			lots: 2.0025, openPrice: 1.0}),
		mkTrade(tradeSpec{id: "P2", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:30:00Z", close: "2025-03-10T11:30:00Z",
			lots: 2.0025, openPrice: 1.0}),
	}

	result := NewMarginUsage().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestMarginUsageAboveThresholdViolates(t *testing.T) {
	// 4020 + 4020 = 8040 = 80.4% while both trades are open.
	trades := []*domain.Trade{
		mkTrade(tradeSpec{id: "P1", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:00:00Z", close: "2025-03-10T12:00:00Z",
			lots: 2.01, openPrice: 1.0}),
		mkTrade(tradeSpec{id: "P2", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:30:00Z", close: "2025-03-10T11:30:00Z",
			lots: 2.01, openPrice: 1.0}),
	}

	result := NewMarginUsage().Evaluate(trades, testParams())

	assert.Equal(t, domain.StatusViolated, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "OPEN", result.Violations[0].Kind)
	assert.Equal(t, "P2", result.Violations[0].PositionID)
	assert.InDelta(t, 80.4, result.Violations[0].Value, 1e-9)
}

func TestMarginUsageSequentialTradesPass(t *testing.T) {
	// The same exposure never overlaps, so usage peaks at 40.2%.
	trades := []*domain.Trade{
		mkTrade(tradeSpec{id: "P1", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:00:00Z", close: "2025-03-10T11:00:00Z",
			lots: 2.01, openPrice: 1.0}),
		mkTrade(tradeSpec{id: "P2", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T11:00:00Z", close: "2025-03-10T12:00:00Z",
			lots: 2.01, openPrice: 1.0}),
	}

	result := NewMarginUsage().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestMarginUsageNoTradesPasses(t *testing.T) {
	result := NewMarginUsage().Evaluate(nil, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}
