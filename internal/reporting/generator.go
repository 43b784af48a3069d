// Package reporting renders evaluation runs as Markdown for humans and CSV
// for downstream tooling.
package reporting

import (
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/engine"
)

// Generator produces reports from engine run results.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds the report for one run.
func (g *Generator) Generate(result *engine.RunResult, account domain.AccountConfig, equity float64, phases []*domain.Phase) *Report {
	report := &Report{
		RunID:           result.RunID,
		GeneratedAt:     g.now(),
		AccountType:     account.AccountType,
		Equity:          equity,
		OverallStatus:   result.Summary.OverallStatus,
		Passed:          result.Summary.Passed,
		Violated:        result.Summary.Violated,
		NotTestable:     result.Summary.NotTestable,
		Errored:         result.Summary.Errored,
		TotalViolations: result.Summary.TotalViolations,
		Input: InputSummary{
			TradeCount: result.TradeCount,
			PhaseCount: len(phases),
		},
	}

	for _, p := range phases {
		for _, t := range p.Trades {
			if report.Input.FirstOpen.IsZero() || t.OpenTime.Before(report.Input.FirstOpen) {
				report.Input.FirstOpen = t.OpenTime
			}
			if t.CloseTime.After(report.Input.LastClose) {
				report.Input.LastClose = t.CloseTime
			}
		}
	}

	report.Rules = make([]RuleRow, len(result.Results))
	for i, r := range result.Results {
		report.Rules[i] = RuleRow{
			RuleNumber: r.RuleNumber,
			RuleName:   r.RuleName,
			Status:     r.Status,
			Message:    r.Message,
			Violations: r.Violations,
		}
	}

	return report
}
