package rules

import (
	"fmt"

	"tradecheck/internal/domain"
)

// AllOrNothing (Rule 12) flags any single trade whose stop-loss risk
// reaches the entire account equity. Trades without a stop loss carry
// undefined risk and are excluded; a file with no stop-loss values at all
// is not testable.
type AllOrNothing struct{}

func NewAllOrNothing() *AllOrNothing { return &AllOrNothing{} }

func (r *AllOrNothing) RuleNumber() int { return 12 }
func (r *AllOrNothing) Name() string    { return "All-or-Nothing Trading" }

func (r *AllOrNothing) Evaluate(trades []*domain.Trade, params Params) domain.RuleResult {
	var withStopLoss []*domain.Trade
	for _, t := range trades {
		if t.StopLoss != nil {
			withStopLoss = append(withStopLoss, t)
		}
	}
	if len(withStopLoss) == 0 {
		return notTestable(12, r.Name(), "no trades have stop loss values, cannot calculate risk")
	}

	var violations []domain.Violation
	for _, t := range withStopLoss {
		risk, ok := params.Catalog.TradeRisk(t, params.Equity)
		if !ok || risk.Percent < maxRiskPercent {
			continue
		}
		violations = append(violations, domain.Violation{
			PositionID: t.PositionID,
			Instrument: t.Instrument,
			Side:       t.Side,
			Timestamp:  t.OpenTime,
			Kind:       "FULL_ACCOUNT_RISK",
			Value:      risk.Percent,
			Threshold:  maxRiskPercent,
			Detail: fmt.Sprintf(
				"position %s on %s risks $%.2f (%.2f%% of equity) at its stop loss",
				t.PositionID, t.Instrument, risk.Dollars, risk.Percent),
		})
	}

	if len(violations) > 0 {
		return violated(12, r.Name(), fmt.Sprintf(
			"%d trade(s) risk the entire account", len(violations)), violations)
	}
	return passed(12, r.Name(), fmt.Sprintf(
		"no trade risks %.0f%% or more of equity", maxRiskPercent))
}
