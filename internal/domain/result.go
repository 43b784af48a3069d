package domain

import "time"

// Status is the outcome of one rule evaluation.
type Status string

const (
	StatusPassed      Status = "PASSED"
	StatusViolated    Status = "VIOLATED"
	StatusNotTestable Status = "NOT_TESTABLE"
	StatusError       Status = "ERROR"
	StatusSkipped     Status = "SKIPPED"

	// StatusIncomplete is an overall-run status only: no rule violated and
	// none passed either, so there is no verdict to give.
	StatusIncomplete Status = "INCOMPLETE"
)

// Violation is one finding from one rule evaluation. It carries enough
// fields to reconstruct the human-readable reason deterministically.
type Violation struct {
	PositionID string
	// RelatedPositionID is set for pairwise findings (e.g. the opposite
	// leg of a hedge).
	RelatedPositionID string
	Instrument        string
	Side              Side
	Timestamp         time.Time
	// Kind distinguishes variants within a rule, e.g. OPEN / CLOSE / HELD
	// for weekend findings or the event type for margin findings.
	Kind      string
	Value     float64
	Threshold float64
	Detail    string
}

// RuleResult is the verdict of one rule over one evaluation run.
type RuleResult struct {
	RuleNumber int
	RuleName   string
	Status     Status
	Violations []Violation
	Message    string
}

// ViolationCount returns the number of findings attached to the result.
func (r *RuleResult) ViolationCount() int {
	return len(r.Violations)
}

// EvaluationRun is the persisted summary of one engine run.
type EvaluationRun struct {
	RunID         string
	AccountType   string
	Equity        float64
	TradeCount    int
	OverallStatus Status
	Passed        int
	Violated      int
	NotTestable   int
	StartedAt     time.Time
	CompletedAt   time.Time
}
