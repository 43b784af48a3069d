package rules

import (
	"fmt"
	"sort"
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/market"
)

// MarginUsage (Rule 13) requires used margin to stay at or below 80% of
// equity at every instant. Margin is re-derived at each open and close
// event over the trades open at that instant; usage above 80.1% violates.
type MarginUsage struct{}

func NewMarginUsage() *MarginUsage { return &MarginUsage{} }

func (r *MarginUsage) RuleNumber() int { return 13 }
func (r *MarginUsage) Name() string    { return "Maximum Margin Usage (80%)" }

type marginEvent struct {
	kind  string // OPEN or CLOSE
	ts    time.Time
	trade *domain.Trade
}

func (r *MarginUsage) Evaluate(trades []*domain.Trade, params Params) domain.RuleResult {
	leverage := params.Account.Leverage

	events := make([]marginEvent, 0, 2*len(trades))
	for _, t := range trades {
		events = append(events, marginEvent{kind: "OPEN", ts: t.OpenTime, trade: t})
		events = append(events, marginEvent{kind: "CLOSE", ts: t.CloseTime, trade: t})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].ts.Before(events[j].ts) })

	var violations []domain.Violation
	for _, ev := range events {
		totalMargin := 0.0
		openCount := 0
		for _, t := range trades {
			if !t.OpenAt(ev.ts) {
				continue
			}
			totalMargin += market.MarginRequired(t.Lots, t.OpenPrice, leverage)
			openCount++
		}
		if openCount == 0 || params.Equity <= 0 {
			continue
		}

		usagePercent := totalMargin / params.Equity * 100
		if usagePercent <= maxMarginUsagePercent {
			continue
		}

		violations = append(violations, domain.Violation{
			PositionID: ev.trade.PositionID,
			Instrument: ev.trade.Instrument,
			Timestamp:  ev.ts,
			Kind:       ev.kind,
			Value:      usagePercent,
			Threshold:  maxMarginUsagePercent,
			Detail: fmt.Sprintf(
				"at %s (%s of position %s) margin for %d open position(s) was $%.2f, %.2f%% of equity",
				ev.ts.UTC().Format("2006-01-02 15:04:05"), ev.kind, ev.trade.PositionID,
				openCount, totalMargin, usagePercent),
		})
	}

	if len(violations) > 0 {
		return violated(13, r.Name(), fmt.Sprintf(
			"margin usage exceeded %.1f%% at %d event(s)", maxMarginUsagePercent, len(violations)),
			violations)
	}
	return passed(13, r.Name(), fmt.Sprintf(
		"margin usage stayed at or below %.1f%% of equity", maxMarginUsagePercent))
}
