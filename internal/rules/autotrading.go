package rules

import (
	"fmt"
	"math"
	"strings"

	"tradecheck/internal/domain"
)

// ProhibitedEAs (Rule 4) detects automated trading systems by clustering
// trades whose stop-loss distance, take-profit distance, holding duration
// and lot size all match within the global tolerances. A cluster of at
// least 10 trades spanning at least 3 distinct calendar days violates.
//
// Clustering is greedy first-match against a seed trade, not transitive
// closure: a trade matched by one seed is claimed immediately and never
// joins a later group, even when the seed's group stays below the minimum
// size. This under- or over-merges borderline clusters and is the intended
// behavior; do not upgrade it to proper clique detection.
type ProhibitedEAs struct{}

func NewProhibitedEAs() *ProhibitedEAs { return &ProhibitedEAs{} }

func (r *ProhibitedEAs) RuleNumber() int { return 4 }
func (r *ProhibitedEAs) Name() string    { return "Prohibited Third-Party Strategies (EAs)" }

type patternTrade struct {
	trade      *domain.Trade
	slDistance float64
	tpDistance float64
}

func (r *ProhibitedEAs) Evaluate(trades []*domain.Trade, _ Params) domain.RuleResult {
	// Pattern detection needs both levels present; a zero stop loss still
	// yields a usable distance here.
	var patterns []patternTrade
	for _, t := range trades {
		if t.StopLoss == nil || t.TakeProfit == nil {
			continue
		}
		patterns = append(patterns, patternTrade{
			trade:      t,
			slDistance: math.Abs(t.OpenPrice - *t.StopLoss),
			tpDistance: math.Abs(t.OpenPrice - *t.TakeProfit),
		})
	}

	if len(patterns) < eaMinClusterTrades {
		return notTestable(4, r.Name(), fmt.Sprintf(
			"only %d trades have both SL and TP (minimum required: %d)",
			len(patterns), eaMinClusterTrades))
	}

	groups := findPatternGroups(patterns)

	var violations []domain.Violation
	for _, group := range groups {
		dates := make(map[string]struct{})
		for _, i := range group {
			dates[patterns[i].trade.OpenDate()] = struct{}{}
		}
		if len(dates) < eaMinClusterDays {
			continue
		}

		seed := patterns[group[0]]
		sample := make([]string, 0, 5)
		for _, i := range group[:min(5, len(group))] {
			sample = append(sample, patterns[i].trade.PositionID)
		}

		violations = append(violations, domain.Violation{
			PositionID: seed.trade.PositionID,
			Instrument: seed.trade.Instrument,
			Side:       seed.trade.Side,
			Timestamp:  seed.trade.OpenTime,
			Kind:       "PATTERN_GROUP",
			Value:      float64(len(group)),
			Threshold:  eaMinClusterTrades,
			Detail: fmt.Sprintf(
				"%d trades with identical pattern (SL dist %.5f, TP dist %.5f, %.0fs, %.4f lots) across %d days; e.g. %s",
				len(group), seed.slDistance, seed.tpDistance,
				seed.trade.DurationSeconds, seed.trade.Lots, len(dates),
				strings.Join(sample, ", ")),
		})
	}

	if len(violations) > 0 {
		return violated(4, r.Name(), fmt.Sprintf(
			"found %d suspicious pattern group(s)", len(violations)), violations)
	}
	return passed(4, r.Name(), "no automated trading patterns detected")
}

// findPatternGroups assigns each trade to the first seed it matches.
// Matched trades are claimed even when the seed's final group is too small
// to report.
func findPatternGroups(patterns []patternTrade) [][]int {
	used := make(map[int]bool, len(patterns))
	var groups [][]int

	for i := range patterns {
		if used[i] {
			continue
		}
		group := []int{i}
		for j := range patterns {
			if j == i || used[j] {
				continue
			}
			if patternsMatch(patterns[i], patterns[j]) {
				group = append(group, j)
				used[j] = true
			}
		}
		if len(group) >= eaMinClusterTrades {
			groups = append(groups, group)
			used[i] = true
		}
	}
	return groups
}

func patternsMatch(a, b patternTrade) bool {
	if math.Abs(a.slDistance-b.slDistance) > PriceTolerance {
		return false
	}
	if math.Abs(a.tpDistance-b.tpDistance) > PriceTolerance {
		return false
	}
	if math.Abs(a.trade.DurationSeconds-b.trade.DurationSeconds) > TimeToleranceSeconds {
		return false
	}
	return math.Abs(a.trade.Lots-b.trade.Lots) <= LotsTolerance
}
