package rules

import (
	"fmt"
	"sort"
	"strings"

	"tradecheck/internal/domain"
)

// OneSidedBets (Rule 15) limits concurrent same-direction exposure: no more
// than 2 trades in the same direction on the same instrument may be open
// simultaneously. Concurrency is re-derived at each trade's open instant;
// findings are deduplicated per (instrument, direction, timestamp).
type OneSidedBets struct{}

func NewOneSidedBets() *OneSidedBets { return &OneSidedBets{} }

func (r *OneSidedBets) RuleNumber() int { return 15 }
func (r *OneSidedBets) Name() string    { return "One-Sided Bets" }

func (r *OneSidedBets) Evaluate(trades []*domain.Trade, _ Params) domain.RuleResult {
	type key struct {
		instrument string
		side       domain.Side
	}
	groups := make(map[key][]*domain.Trade)
	for _, t := range trades {
		k := key{t.Instrument, t.Side}
		groups[k] = append(groups[k], t)
	}

	seen := make(map[string]bool)
	var violations []domain.Violation
	for k, group := range groups {
		if len(group) <= maxSameDirectionTrades {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].OpenTime.Before(group[j].OpenTime) })

		for _, t := range group {
			var open []*domain.Trade
			for _, other := range group {
				if other.OpenAt(t.OpenTime) {
					open = append(open, other)
				}
			}
			if len(open) <= maxSameDirectionTrades {
				continue
			}

			dedupKey := fmt.Sprintf("%s_%s_%d", k.instrument, k.side, t.OpenTime.UnixNano())
			if seen[dedupKey] {
				continue
			}
			seen[dedupKey] = true

			ids := make([]string, 0, len(open))
			for _, o := range open {
				ids = append(ids, o.PositionID)
			}

			violations = append(violations, domain.Violation{
				PositionID: t.PositionID,
				Instrument: k.instrument,
				Side:       k.side,
				Timestamp:  t.OpenTime,
				Kind:       "CONCURRENT_DIRECTION",
				Value:      float64(len(open)),
				Threshold:  maxSameDirectionTrades,
				Detail: fmt.Sprintf(
					"%d %s trades open simultaneously on %s: %s",
					len(open), k.side, k.instrument, strings.Join(ids, ", ")),
			})
		}
	}

	sortViolations(violations)

	if len(violations) > 0 {
		return violated(15, r.Name(), fmt.Sprintf(
			"found %d instance(s) of more than %d concurrent same-direction trades",
			len(violations), maxSameDirectionTrades), violations)
	}
	return passed(15, r.Name(), fmt.Sprintf(
		"never more than %d same-direction trades open simultaneously", maxSameDirectionTrades))
}
