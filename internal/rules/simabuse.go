package rules

import (
	"fmt"
	"math"
	"sort"
	"time"

	"tradecheck/internal/domain"
)

// SimAbuse (Rule 16) detects abuse of the simulated environment: within a
// 24-hour window anchored at each trade's open time, total notional volume
// reaching 10x equity AND at least 80% of window trades opened without a
// stop loss. Both conditions are required; windows starting within an hour
// of an already reported one are merged into that finding.
type SimAbuse struct{}

func NewSimAbuse() *SimAbuse { return &SimAbuse{} }

func (r *SimAbuse) RuleNumber() int { return 16 }
func (r *SimAbuse) Name() string    { return "Abuse of Simulated Environment" }

func (r *SimAbuse) Evaluate(trades []*domain.Trade, params Params) domain.RuleResult {
	sorted := make([]*domain.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OpenTime.Before(sorted[j].OpenTime) })

	volumeThreshold := params.Equity * abuseVolumeMultiplier

	var violations []domain.Violation
	for _, anchor := range sorted {
		windowStart := anchor.OpenTime
		windowEnd := windowStart.Add(abuseWindowHours * time.Hour)

		totalVolume := 0.0
		windowCount := 0
		withoutStopLoss := 0
		for _, t := range sorted {
			if t.OpenTime.Before(windowStart) || !t.OpenTime.Before(windowEnd) {
				continue
			}
			windowCount++
			totalVolume += params.Catalog.NotionalVolume(t.Lots, t.Instrument, t.OpenPrice)
			if !t.HasStopLoss() {
				withoutStopLoss++
			}
		}
		if windowCount == 0 {
			continue
		}

		noStopLossPercent := float64(withoutStopLoss) / float64(windowCount) * 100
		if totalVolume < volumeThreshold || noStopLossPercent < abuseNoStopLossPercent {
			continue
		}

		duplicate := false
		for _, v := range violations {
			if math.Abs(v.Timestamp.Sub(windowStart).Seconds()) < abuseDedupSeconds {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		violations = append(violations, domain.Violation{
			PositionID: anchor.PositionID,
			Instrument: anchor.Instrument,
			Timestamp:  windowStart,
			Kind:       "ABUSE_WINDOW",
			Value:      totalVolume,
			Threshold:  volumeThreshold,
			Detail: fmt.Sprintf(
				"24h window from %s: %d trades, notional volume $%.2f (threshold $%.2f), %.1f%% without stop loss",
				windowStart.UTC().Format("2006-01-02 15:04:05"), windowCount,
				totalVolume, volumeThreshold, noStopLossPercent),
		})
	}

	if len(violations) > 0 {
		return violated(16, r.Name(), fmt.Sprintf(
			"found %d abusive 24-hour window(s)", len(violations)), violations)
	}
	return passed(16, r.Name(), "no 24-hour window met both abuse conditions")
}
