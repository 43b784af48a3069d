package rules

import (
	"fmt"
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/interval"
)

// WeekendTrading (Rule 19) prohibits opening, closing, or holding positions
// from Friday 22:00 UTC to Sunday 22:00 UTC. Each trade is checked in
// priority order: OPEN inside the window, CLOSE inside the window, and only
// if neither fired, HELD (interval overlap of at least one second with any
// weekend window). An enabled weekend add-on makes the rule not testable.
type WeekendTrading struct{}

func NewWeekendTrading() *WeekendTrading { return &WeekendTrading{} }

func (r *WeekendTrading) RuleNumber() int { return 19 }
func (r *WeekendTrading) Name() string    { return "Weekend Trading and Holding" }

func (r *WeekendTrading) Evaluate(trades []*domain.Trade, params Params) domain.RuleResult {
	if params.WeekendAddonEnabled {
		return notTestable(19, r.Name(), "weekend holding add-on is enabled, rule skipped")
	}
	if len(trades) == 0 {
		return passed(19, r.Name(), "no trades to check")
	}

	rangeStart, rangeEnd := tradeTimeRange(trades)
	windows := interval.WeekendWindows(rangeStart, rangeEnd)

	var violations []domain.Violation
	for _, t := range trades {
		flagged := false
		if interval.IsWeekend(t.OpenTime) {
			violations = append(violations, weekendViolation(t, "OPEN", t.OpenTime))
			flagged = true
		}
		if interval.IsWeekend(t.CloseTime) {
			violations = append(violations, weekendViolation(t, "CLOSE", t.CloseTime))
			flagged = true
		}
		if flagged {
			continue
		}
		for _, w := range windows {
			if ok, _ := interval.Overlap(t.OpenTime, t.CloseTime, w.Start, w.End); ok {
				violations = append(violations, weekendViolation(t, "HELD", w.Start))
				break
			}
		}
	}

	if len(violations) > 0 {
		return violated(19, r.Name(), fmt.Sprintf(
			"found %d weekend trading/holding violation(s)", len(violations)), violations)
	}
	return passed(19, r.Name(), "no weekend trading violations detected")
}

func weekendViolation(t *domain.Trade, kind string, at time.Time) domain.Violation {
	return domain.Violation{
		PositionID: t.PositionID,
		Instrument: t.Instrument,
		Side:       t.Side,
		Timestamp:  at,
		Kind:       kind,
		Detail: fmt.Sprintf(
			"position %s (%s %s) was %s during the weekend window at %s",
			t.PositionID, t.Instrument, t.Side, kind,
			at.UTC().Format("2006-01-02 15:04:05")),
	}
}

func tradeTimeRange(trades []*domain.Trade) (start, end time.Time) {
	start, end = trades[0].OpenTime, trades[0].CloseTime
	for _, t := range trades[1:] {
		if t.OpenTime.Before(start) {
			start = t.OpenTime
		}
		if t.CloseTime.After(end) {
			end = t.CloseTime
		}
	}
	return start, end
}
