package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tradecheck/internal/domain"
)

// buildPhase creates n trades spread one per day with the given duration
// in minutes and optional stop-loss distance.
func buildPhase(label string, n int, durationMinutes int, slDistance float64) *domain.Phase {
	var trades []*domain.Trade
	for i := 0; i < n; i++ {
		day := fmt.Sprintf("2025-03-%02dT10:00:00Z", i%25+1)
		open := at(day)
		close := open.Add(minutes(durationMinutes))
		trade := &domain.Trade{
			PositionID:      fmt.Sprintf("%s-%d", label, i),
			Instrument:      "EURUSD",
			Side:            domain.SideBuy,
			OpenTime:        open,
			CloseTime:       close,
			Lots:            1.0,
			OpenPrice:       1.1,
			ClosePrice:      1.1,
			DurationSeconds: close.Sub(open).Seconds(),
		}
		if slDistance > 0 {
			trade.StopLoss = fp(1.1 - slDistance)
		}
		trades = append(trades, trade)
	}
	return &domain.Phase{Label: label, Trades: trades}
}

func TestConsistencyNotTestableWithFewTrades(t *testing.T) {
	params := testParams()
	params.ConsistencyPhases = []*domain.Phase{
		buildPhase("Phase 1", 19, 60, 0.01),
		buildPhase("Phase 2", 25, 60, 0.01),
	}

	result := NewStrategyConsistency().Evaluate(nil, params)
	assert.Equal(t, domain.StatusNotTestable, result.Status)
}

func TestConsistencyNotTestableWithOnePhase(t *testing.T) {
	params := testParams()
	params.ConsistencyPhases = []*domain.Phase{buildPhase("Phase 1", 25, 60, 0.01)}

	result := NewStrategyConsistency().Evaluate(nil, params)
	assert.Equal(t, domain.StatusNotTestable, result.Status)
}

func TestConsistencyConsistentPhasesPass(t *testing.T) {
	params := testParams()
	params.ConsistencyPhases = []*domain.Phase{
		buildPhase("Phase 1", 25, 60, 0.01),
		buildPhase("Phase 2", 25, 70, 0.012),
	}

	result := NewStrategyConsistency().Evaluate(nil, params)
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestConsistencyTwoDivergentMetricsViolate(t *testing.T) {
	params := testParams()
	// Same trades per day, but duration 4x and risk 5x apart.
	params.ConsistencyPhases = []*domain.Phase{
		buildPhase("Phase 1", 25, 60, 0.01),
		buildPhase("Funded Phase", 25, 240, 0.05),
	}

	result := NewStrategyConsistency().Evaluate(nil, params)
	assert.Equal(t, domain.StatusViolated, result.Status)
	assert.Len(t, result.Violations, 2)
}

func TestConsistencySingleDivergentMetricPasses(t *testing.T) {
	params := testParams()
	params.ConsistencyPhases = []*domain.Phase{
		buildPhase("Phase 1", 25, 60, 0.01),
		buildPhase("Phase 2", 25, 240, 0.01),
	}

	result := NewStrategyConsistency().Evaluate(nil, params)
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestConsistencyUndefinedRiskRatioDoesNotCount(t *testing.T) {
	params := testParams()
	// Phase 2 has no stop losses: the risk ratio is undefined and must not
	// count toward the threshold even with durations 4x apart.
	params.ConsistencyPhases = []*domain.Phase{
		buildPhase("Phase 1", 25, 60, 0.01),
		buildPhase("Phase 2", 25, 240, 0),
	}

	result := NewStrategyConsistency().Evaluate(nil, params)
	assert.Equal(t, domain.StatusPassed, result.Status)
}
