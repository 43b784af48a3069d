package rules

import (
	"fmt"

	"tradecheck/internal/domain"
)

// Gambling (Rule 14) classifies the account as gambling when more than half
// of all trades are held for under 60 seconds (plus the one-second time
// tolerance). Always testable.
type Gambling struct{}

func NewGambling() *Gambling { return &Gambling{} }

func (r *Gambling) RuleNumber() int { return 14 }
func (r *Gambling) Name() string    { return "Gambling Definition" }

func (r *Gambling) Evaluate(trades []*domain.Trade, _ Params) domain.RuleResult {
	if len(trades) == 0 {
		return passed(14, r.Name(), "no trades to classify")
	}

	cutoff := gamblingShortSeconds + TimeToleranceSeconds
	short := 0
	for _, t := range trades {
		if t.DurationSeconds < cutoff {
			short++
		}
	}

	shortPercent := float64(short) / float64(len(trades)) * 100
	if shortPercent > gamblingThresholdPercent {
		v := domain.Violation{
			Kind:      "SHORT_TRADE_SHARE",
			Value:     shortPercent,
			Threshold: gamblingThresholdPercent,
			Detail: fmt.Sprintf(
				"%d of %d trades (%.2f%%) were held under %.0f seconds",
				short, len(trades), shortPercent, gamblingShortSeconds),
		}
		return violated(14, r.Name(), fmt.Sprintf(
			"%.2f%% of trades are shorter than %.0fs", shortPercent, gamblingShortSeconds),
			[]domain.Violation{v})
	}

	return passed(14, r.Name(), fmt.Sprintf(
		"%.2f%% of trades are shorter than %.0fs", shortPercent, gamblingShortSeconds))
}
