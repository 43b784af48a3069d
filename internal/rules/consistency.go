package rules

import (
	"fmt"

	"tradecheck/internal/domain"
)

// StrategyConsistency (Rule 3) compares trading behavior between two account
// phases: median trade duration, trades per day, and median risk per trade.
// If at least two of the three metric ratios (max/min) reach 3x, the
// strategies are inconsistent. Either phase having fewer than 20 trades
// makes the rule not testable.
type StrategyConsistency struct{}

func NewStrategyConsistency() *StrategyConsistency { return &StrategyConsistency{} }

func (r *StrategyConsistency) RuleNumber() int { return 3 }
func (r *StrategyConsistency) Name() string    { return "Strategy Consistency" }

// phaseMetrics are the three per-phase behavior metrics. Median risk is
// undefined when no trade in the phase has a usable stop loss.
type phaseMetrics struct {
	medianDurationSeconds float64
	tradesPerDay          float64
	medianRiskPercent     float64
	riskDefined           bool
	tradesWithStopLoss    int
}

func (r *StrategyConsistency) Evaluate(_ []*domain.Trade, params Params) domain.RuleResult {
	if len(params.ConsistencyPhases) < 2 {
		return notTestable(3, r.Name(), "need at least 2 phases to test consistency")
	}

	phaseA, phaseB := params.ConsistencyPhases[0], params.ConsistencyPhases[1]
	if len(phaseA.Trades) < consistencyMinTrades {
		return notTestable(3, r.Name(), fmt.Sprintf(
			"%s has only %d trades (minimum required: %d)",
			phaseA.Label, len(phaseA.Trades), consistencyMinTrades))
	}
	if len(phaseB.Trades) < consistencyMinTrades {
		return notTestable(3, r.Name(), fmt.Sprintf(
			"%s has only %d trades (minimum required: %d)",
			phaseB.Label, len(phaseB.Trades), consistencyMinTrades))
	}

	metricsA := computePhaseMetrics(phaseA.Trades, params)
	metricsB := computePhaseMetrics(phaseB.Trades, params)

	type comparison struct {
		kind  string
		a, b  float64
		valid bool
	}
	comparisons := []comparison{
		{"MEDIAN_DURATION", metricsA.medianDurationSeconds, metricsB.medianDurationSeconds, true},
		{"TRADES_PER_DAY", metricsA.tradesPerDay, metricsB.tradesPerDay, true},
		{"MEDIAN_RISK", metricsA.medianRiskPercent, metricsB.medianRiskPercent,
			metricsA.riskDefined && metricsB.riskDefined},
	}

	var exceeding []domain.Violation
	exceeded := 0
	for _, c := range comparisons {
		ratio, ok := metricRatio(c.a, c.b)
		if !c.valid || !ok || ratio < consistencyRatioThreshold {
			continue
		}
		exceeded++
		exceeding = append(exceeding, domain.Violation{
			Kind:      c.kind,
			Value:     ratio,
			Threshold: consistencyRatioThreshold,
			Detail: fmt.Sprintf("%s differs %.2fx between %s (%.2f) and %s (%.2f)",
				c.kind, ratio, phaseA.Label, c.a, phaseB.Label, c.b),
		})
	}

	if exceeded >= 2 {
		return violated(3, r.Name(), fmt.Sprintf(
			"%d of 3 metrics differ by at least %.0fx between %s and %s",
			exceeded, consistencyRatioThreshold, phaseA.Label, phaseB.Label), exceeding)
	}
	return passed(3, r.Name(), fmt.Sprintf(
		"%d of 3 metrics differ by at least %.0fx", exceeded, consistencyRatioThreshold))
}

func computePhaseMetrics(trades []*domain.Trade, params Params) phaseMetrics {
	durations := make([]float64, 0, len(trades))
	for _, t := range trades {
		durations = append(durations, t.DurationSeconds)
	}
	medianDuration, _ := median(durations)

	tradesPerDay := 0.0
	if days := domain.DistinctTradingDays(trades); days > 0 {
		tradesPerDay = float64(len(trades)) / float64(days)
	}

	var risks []float64
	for _, t := range trades {
		if risk, ok := params.Catalog.TradeRisk(t, params.Equity); ok {
			risks = append(risks, risk.Percent)
		}
	}
	medianRisk, riskDefined := median(risks)

	return phaseMetrics{
		medianDurationSeconds: medianDuration,
		tradesPerDay:          tradesPerDay,
		medianRiskPercent:     medianRisk,
		riskDefined:           riskDefined,
		tradesWithStopLoss:    len(risks),
	}
}

// metricRatio is max/min. A zero on either side makes the ratio undefined,
// which never counts as exceeding the threshold.
func metricRatio(a, b float64) (float64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	if a > b {
		return a / b, true
	}
	return b / a, true
}
