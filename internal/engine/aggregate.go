package engine

import (
	"tradecheck/internal/domain"
)

// Summary is the aggregated verdict over one evaluation run.
type Summary struct {
	OverallStatus   domain.Status
	Passed          int
	Violated        int
	NotTestable     int
	Errored         int
	TotalViolations int
}

// Aggregate folds per-rule results into the run verdict. Any violated rule
// makes the run VIOLATED; otherwise one passed rule is enough for PASSED.
// A run where every rule was not testable, skipped, or errored is
// INCOMPLETE. Not-testable and errored rules never block a pass on their
// own.
func Aggregate(results []domain.RuleResult) Summary {
	s := Summary{}
	for _, r := range results {
		switch r.Status {
		case domain.StatusPassed:
			s.Passed++
		case domain.StatusViolated:
			s.Violated++
			s.TotalViolations += r.ViolationCount()
		case domain.StatusNotTestable:
			s.NotTestable++
		case domain.StatusError:
			s.Errored++
		}
	}
	switch {
	case s.Violated > 0:
		s.OverallStatus = domain.StatusViolated
	case s.Passed > 0:
		s.OverallStatus = domain.StatusPassed
	default:
		s.OverallStatus = domain.StatusIncomplete
	}
	return s
}
