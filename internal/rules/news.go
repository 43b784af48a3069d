package rules

import (
	"fmt"
	"math"
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/market"
)

// NewsTrading (Rule 18) forbids opening or closing a position within five
// minutes of an economic news release affecting one of the instrument's
// currencies. An enabled news add-on or an empty calendar makes the rule
// not testable; an empty calendar never means "no violations".
type NewsTrading struct{}

func NewNewsTrading() *NewsTrading { return &NewsTrading{} }

func (r *NewsTrading) RuleNumber() int { return 18 }
func (r *NewsTrading) Name() string    { return "News Trading Restriction" }

func (r *NewsTrading) Evaluate(trades []*domain.Trade, params Params) domain.RuleResult {
	if params.NewsAddonEnabled {
		return notTestable(18, r.Name(), "news trading add-on is enabled, rule skipped")
	}
	if len(params.NewsEvents) == 0 {
		return notTestable(18, r.Name(), "no news event data available, cannot test")
	}

	var violations []domain.Violation
	for _, t := range trades {
		base, quote, ok := market.CurrencyPair(t.Instrument)
		if !ok {
			continue
		}

		for _, event := range params.NewsEvents {
			if event.Currency != base && event.Currency != quote {
				continue
			}

			if diff := math.Abs(t.OpenTime.Sub(event.Time).Seconds()); diff <= newsBufferSeconds {
				violations = append(violations, newsViolation(t, event, "OPEN", t.OpenTime, diff))
			}
			if diff := math.Abs(t.CloseTime.Sub(event.Time).Seconds()); diff <= newsBufferSeconds {
				violations = append(violations, newsViolation(t, event, "CLOSE", t.CloseTime, diff))
			}
		}
	}

	if len(violations) > 0 {
		return violated(18, r.Name(), fmt.Sprintf(
			"found %d trade event(s) within %.0fs of a relevant news release",
			len(violations), newsBufferSeconds), violations)
	}
	return passed(18, r.Name(), fmt.Sprintf(
		"no trade opened or closed within %.0fs of a relevant news event", newsBufferSeconds))
}

func newsViolation(t *domain.Trade, event domain.NewsEvent, kind string, at time.Time, diff float64) domain.Violation {
	return domain.Violation{
		PositionID: t.PositionID,
		Instrument: t.Instrument,
		Side:       t.Side,
		Timestamp:  at,
		Kind:       kind,
		Value:      diff,
		Threshold:  newsBufferSeconds,
		Detail: fmt.Sprintf(
			"position %s %s at %s, %.0fs from news event %q (%s) at %s",
			t.PositionID, kind, at.UTC().Format("2006-01-02 15:04:05"), diff,
			event.Title, event.Currency, event.Time.UTC().Format("2006-01-02 15:04:05")),
	}
}
