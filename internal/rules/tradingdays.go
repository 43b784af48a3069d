package rules

import (
	"fmt"

	"tradecheck/internal/domain"
)

// MinTradingDays (Rule 23) requires a minimum number of distinct calendar
// days with at least one trade, depending on the account type. A zero
// minimum always passes.
type MinTradingDays struct{}

func NewMinTradingDays() *MinTradingDays { return &MinTradingDays{} }

func (r *MinTradingDays) RuleNumber() int { return 23 }
func (r *MinTradingDays) Name() string    { return "Minimum Trading Days" }

func (r *MinTradingDays) Evaluate(trades []*domain.Trade, params Params) domain.RuleResult {
	minDays := params.Account.MinTradingDays
	days := domain.DistinctTradingDays(trades)

	if minDays == 0 {
		return passed(23, r.Name(), fmt.Sprintf(
			"%s has no minimum trading days requirement (%d days traded)",
			params.Account.AccountType, days))
	}

	if days < minDays {
		v := domain.Violation{
			Kind:      "INSUFFICIENT_DAYS",
			Value:     float64(days),
			Threshold: float64(minDays),
			Detail: fmt.Sprintf(
				"only %d distinct trading day(s), %s requires at least %d",
				days, params.Account.AccountType, minDays),
		}
		return violated(23, r.Name(), fmt.Sprintf(
			"%d of %d required trading days", days, minDays), []domain.Violation{v})
	}

	return passed(23, r.Name(), fmt.Sprintf(
		"%d distinct trading days meets the minimum of %d", days, minDays))
}
