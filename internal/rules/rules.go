// Package rules implements the compliance rule evaluators. Each evaluator
// is a pure function over the normalized trade table: no I/O, no hidden
// state, identical output for identical input.
package rules

import (
	"sort"

	"tradecheck/internal/domain"
	"tradecheck/internal/market"
)

// Global comparison tolerances.
const (
	TimeToleranceSeconds = 1.0
	PriceTolerance       = 0.00001
	LotsTolerance        = 0.0001
)

// Rule thresholds.
const (
	consistencyMinTrades      = 20
	consistencyRatioThreshold = 3.0 // ratio >= 3x means >= 200% difference

	eaMinClusterTrades = 10
	eaMinClusterDays   = 3

	maxRiskPercent = 100.0

	maxMarginUsagePercent = 80.1

	gamblingShortSeconds     = 60.0
	gamblingThresholdPercent = 50.0

	maxSameDirectionTrades = 2

	abuseVolumeMultiplier  = 10.0
	abuseNoStopLossPercent = 80.0
	abuseWindowHours       = 24
	abuseDedupSeconds      = 3600.0

	ideaMaxRiskPercent = 2.05
	ideaGapSeconds     = 300.0
	ideaGapGoldSeconds = 60.0

	newsBufferSeconds = 300.0
)

// Params carries the per-run inputs shared by evaluators. Evaluators read
// only the fields they need.
type Params struct {
	Account domain.AccountConfig
	Equity  float64

	NewsAddonEnabled    bool
	WeekendAddonEnabled bool

	Catalog *market.Catalog

	// NewsEvents is the precomputed economic calendar. Empty means the
	// news rule is not testable, never "no violations".
	NewsEvents []domain.NewsEvent

	// ConsistencyPhases is the ordered pair of phase tables for the
	// cross-phase comparison, selected by the caller. Fewer than two
	// entries makes the consistency rule not testable.
	ConsistencyPhases []*domain.Phase
}

// Evaluator is one compliance rule.
type Evaluator interface {
	RuleNumber() int
	Name() string
	Evaluate(trades []*domain.Trade, params Params) domain.RuleResult
}

// All returns every implemented evaluator in rule-number order.
func All() []Evaluator {
	return []Evaluator{
		NewHedgingBan(),
		NewStrategyConsistency(),
		NewProhibitedEAs(),
		NewAllOrNothing(),
		NewMarginUsage(),
		NewGambling(),
		NewOneSidedBets(),
		NewSimAbuse(),
		NewIdeaRisk(),
		NewNewsTrading(),
		NewWeekendTrading(),
		NewMinTradingDays(),
	}
}

// ByNumber returns the evaluator for a rule number.
func ByNumber(n int) (Evaluator, bool) {
	for _, e := range All() {
		if e.RuleNumber() == n {
			return e, true
		}
	}
	return nil, false
}

// sortViolations orders findings by time, then position, so results are
// byte-identical across runs regardless of map iteration order.
func sortViolations(vs []domain.Violation) {
	sort.Slice(vs, func(i, j int) bool {
		if !vs[i].Timestamp.Equal(vs[j].Timestamp) {
			return vs[i].Timestamp.Before(vs[j].Timestamp)
		}
		if vs[i].PositionID != vs[j].PositionID {
			return vs[i].PositionID < vs[j].PositionID
		}
		return vs[i].RelatedPositionID < vs[j].RelatedPositionID
	})
}

func passed(num int, name, message string) domain.RuleResult {
	return domain.RuleResult{
		RuleNumber: num,
		RuleName:   name,
		Status:     domain.StatusPassed,
		Message:    message,
	}
}

func violated(num int, name, message string, violations []domain.Violation) domain.RuleResult {
	return domain.RuleResult{
		RuleNumber: num,
		RuleName:   name,
		Status:     domain.StatusViolated,
		Violations: violations,
		Message:    message,
	}
}

func notTestable(num int, name, message string) domain.RuleResult {
	return domain.RuleResult{
		RuleNumber: num,
		RuleName:   name,
		Status:     domain.StatusNotTestable,
		Message:    message,
	}
}
