package rules

import (
	"fmt"
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/interval"
)

// HedgingBan (Rule 1) forbids holding long and short positions on the same
// instrument at the same time. Opposite-side trades whose intervals overlap
// by at least one second violate; a position closing exactly when the other
// opens is allowed.
type HedgingBan struct{}

func NewHedgingBan() *HedgingBan { return &HedgingBan{} }

func (r *HedgingBan) RuleNumber() int { return 1 }
func (r *HedgingBan) Name() string    { return "Hedging Ban" }

func (r *HedgingBan) Evaluate(trades []*domain.Trade, _ Params) domain.RuleResult {
	byInstrument := make(map[string][]*domain.Trade)
	for _, t := range trades {
		byInstrument[t.Instrument] = append(byInstrument[t.Instrument], t)
	}

	var violations []domain.Violation
	for instrument, group := range byInstrument {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.Side == b.Side {
					continue
				}

				ok, seconds := interval.Overlap(a.OpenTime, a.CloseTime, b.OpenTime, b.CloseTime)
				if !ok {
					continue
				}

				violations = append(violations, domain.Violation{
					PositionID:        a.PositionID,
					RelatedPositionID: b.PositionID,
					Instrument:        instrument,
					Side:              a.Side,
					Timestamp:         laterOf(a.OpenTime, b.OpenTime),
					Kind:              "OVERLAP",
					Value:             seconds,
					Threshold:         interval.MinOverlapSeconds,
					Detail: fmt.Sprintf(
						"positions %s (%s) and %s (%s) on %s overlapped for %.1fs",
						a.PositionID, a.Side, b.PositionID, b.Side, instrument, seconds),
				})
			}
		}
	}

	sortViolations(violations)

	if len(violations) > 0 {
		return violated(1, r.Name(),
			fmt.Sprintf("found %d hedging violation(s)", len(violations)), violations)
	}
	return passed(1, r.Name(), "no opposite-side overlaps detected")
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
