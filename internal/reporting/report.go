package reporting

import (
	"time"

	"tradecheck/internal/domain"
)

// Report is the rendered outcome of one evaluation run.
type Report struct {
	// Metadata
	RunID       string
	GeneratedAt time.Time
	AccountType string
	Equity      float64

	// Input summary
	Input InputSummary

	// Verdict
	OverallStatus   domain.Status
	Passed          int
	Violated        int
	NotTestable     int
	Errored         int
	TotalViolations int

	// Per-rule outcomes in rule-number order.
	Rules []RuleRow
}

// InputSummary describes the normalized input the run saw.
type InputSummary struct {
	TradeCount  int
	PhaseCount  int
	DroppedRows int
	SwappedRows int
	FirstOpen   time.Time
	LastClose   time.Time
}

// RuleRow is one rule's outcome plus its findings.
type RuleRow struct {
	RuleNumber int
	RuleName   string
	Status     domain.Status
	Message    string
	Violations []domain.Violation
}
