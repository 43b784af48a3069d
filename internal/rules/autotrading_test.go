package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecheck/internal/domain"
)

// identicalPattern creates n trades with matching SL distance, TP distance,
// duration and lots, spread across the given number of days.
func identicalPattern(n, days int) []*domain.Trade {
	var trades []*domain.Trade
	for i := 0; i < n; i++ {
		open := at(fmt.Sprintf("2025-03-%02dT10:00:00Z", i%days+10)).Add(minutes(i * 5))
		close := open.Add(minutes(30))
		trades = append(trades, &domain.Trade{
			PositionID:      fmt.Sprintf("P%d", i),
			Instrument:      "EURUSD",
			Side:            domain.SideBuy,
			OpenTime:        open,
			CloseTime:       close,
			Lots:            0.5,
			OpenPrice:       1.1000,
			ClosePrice:      1.1000,
			StopLoss:        fp(1.0900),
			TakeProfit:      fp(1.1200),
			DurationSeconds: 1800,
		})
	}
	return trades
}

func TestProhibitedEAsNotTestableWithoutLevels(t *testing.T) {
	trades := identicalPattern(9, 3)
	// One more trade, but missing the take profit.
	extra := identicalPattern(1, 1)[0]
	extra.TakeProfit = nil
	trades = append(trades, extra)

	result := NewProhibitedEAs().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusNotTestable, result.Status)
}

func TestProhibitedEAsDetectsPatternAcrossDays(t *testing.T) {
	trades := identicalPattern(12, 3)

	result := NewProhibitedEAs().Evaluate(trades, testParams())

	assert.Equal(t, domain.StatusViolated, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, 12.0, result.Violations[0].Value)
}

func TestProhibitedEAsSingleDayPatternPasses(t *testing.T) {
	trades := identicalPattern(12, 1)

	result := NewProhibitedEAs().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestProhibitedEAsToleranceBreaksPattern(t *testing.T) {
	trades := identicalPattern(12, 3)
	// Push lots of half the trades past the lot tolerance.
	for i := 0; i < 6; i++ {
		trades[i].Lots = 0.6
	}

	result := NewProhibitedEAs().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestProhibitedEAsPatternSpanningTwoDaysPasses(t *testing.T) {
	trades := identicalPattern(10, 2)

	result := NewProhibitedEAs().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}
