// Package engine runs the full rule set over an account's trading history
// and aggregates the per-rule results into a run verdict.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"tradecheck/internal/domain"
	"tradecheck/internal/market"
	"tradecheck/internal/observability"
	"tradecheck/internal/rules"
)

// Runner evaluates every rule against the supplied phases.
type Runner struct {
	account    domain.AccountConfig
	params     domain.EvaluationParams
	catalog    *market.Catalog
	newsEvents []domain.NewsEvent
	evaluators []rules.Evaluator
	logger     zerolog.Logger
	onResult   func(domain.RuleResult)
}

// Options for creating a Runner.
type Options struct {
	Account domain.AccountConfig
	Params  domain.EvaluationParams
	Catalog *market.Catalog

	// NewsEvents is the economic calendar for the news rule. Empty makes
	// that rule not testable.
	NewsEvents []domain.NewsEvent

	// Evaluators overrides the rule set; nil means all rules.
	Evaluators []rules.Evaluator

	Logger zerolog.Logger

	// OnResult is invoked after each rule completes, in rule order.
	OnResult func(domain.RuleResult)
}

// NewRunner creates a new Runner.
func NewRunner(opts Options) *Runner {
	evaluators := opts.Evaluators
	if evaluators == nil {
		evaluators = rules.All()
	}
	return &Runner{
		account:    opts.Account,
		params:     opts.Params,
		catalog:    opts.Catalog,
		newsEvents: opts.NewsEvents,
		evaluators: evaluators,
		logger:     opts.Logger,
		onResult:   opts.OnResult,
	}
}

// RunResult holds everything produced by one engine run.
type RunResult struct {
	RunID       string
	Results     []domain.RuleResult
	Summary     Summary
	TradeCount  int
	StartedAt   time.Time
	CompletedAt time.Time
}

// Run returns the persisted-run summary record for the result.
func (r *RunResult) Run(accountType string, equity float64) domain.EvaluationRun {
	return domain.EvaluationRun{
		RunID:         r.RunID,
		AccountType:   accountType,
		Equity:        equity,
		TradeCount:    r.TradeCount,
		OverallStatus: r.Summary.OverallStatus,
		Passed:        r.Summary.Passed,
		Violated:      r.Summary.Violated,
		NotTestable:   r.Summary.NotTestable,
		StartedAt:     r.StartedAt,
		CompletedAt:   r.CompletedAt,
	}
}

// Run evaluates all rules over the phases. Single-table rules see the
// phases concatenated in order; the cross-phase consistency rule receives
// the pair selected by pickConsistencyPhases. A panicking rule is reported
// as ERROR and never aborts the run.
func (r *Runner) Run(ctx context.Context, phases []*domain.Phase) (*RunResult, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("engine: no phases to evaluate")
	}

	startedAt := time.Now().UTC()
	runID := ulid.Make().String()

	var trades []*domain.Trade
	for _, p := range phases {
		trades = append(trades, p.Trades...)
	}

	params := rules.Params{
		Account:             r.account,
		Equity:              r.params.Equity,
		NewsAddonEnabled:    r.params.NewsAddonEnabled,
		WeekendAddonEnabled: r.params.WeekendAddonEnabled,
		Catalog:             r.catalog,
		NewsEvents:          r.newsEvents,
		ConsistencyPhases:   pickConsistencyPhases(phases),
	}

	logger := r.logger.With().Str("run_id", runID).Logger()
	logger.Info().
		Str("account_type", r.account.AccountType).
		Int("trades", len(trades)).
		Int("phases", len(phases)).
		Msg("starting evaluation run")

	results := make([]domain.RuleResult, 0, len(r.evaluators))
	for _, e := range r.evaluators {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("engine: run aborted: %w", err)
		}

		ruleStart := time.Now()
		result := r.evaluateRule(e, trades, params)
		observability.RecordRuleEvaluated(result, time.Since(ruleStart).Seconds())

		logger.Debug().
			Int("rule", result.RuleNumber).
			Str("status", string(result.Status)).
			Int("violations", result.ViolationCount()).
			Msg("rule evaluated")

		results = append(results, result)
		if r.onResult != nil {
			r.onResult(result)
		}
	}

	summary := Aggregate(results)
	completedAt := time.Now().UTC()
	observability.RecordRunCompleted(string(summary.OverallStatus), completedAt.Sub(startedAt).Seconds())

	logger.Info().
		Str("overall", string(summary.OverallStatus)).
		Int("passed", summary.Passed).
		Int("violated", summary.Violated).
		Int("not_testable", summary.NotTestable).
		Int("errored", summary.Errored).
		Msg("evaluation run completed")

	return &RunResult{
		RunID:       runID,
		Results:     results,
		Summary:     summary,
		TradeCount:  len(trades),
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}, nil
}

func (r *Runner) evaluateRule(e rules.Evaluator, trades []*domain.Trade, params rules.Params) (result domain.RuleResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Int("rule", e.RuleNumber()).
				Interface("panic", rec).
				Msg("rule evaluation panicked")
			result = domain.RuleResult{
				RuleNumber: e.RuleNumber(),
				RuleName:   e.Name(),
				Status:     domain.StatusError,
				Message:    fmt.Sprintf("evaluation failed: %v", rec),
			}
		}
	}()
	return e.Evaluate(trades, params)
}

// pickConsistencyPhases selects the phase pair for the cross-phase
// comparison. Preference order: Phase 1 vs Phase 2, then either evaluation
// phase vs the funded phase, then simply the first two phases supplied.
func pickConsistencyPhases(phases []*domain.Phase) []*domain.Phase {
	if len(phases) < 2 {
		return nil
	}

	byLabel := make(map[string]*domain.Phase, len(phases))
	for _, p := range phases {
		if _, ok := byLabel[p.Label]; !ok {
			byLabel[p.Label] = p
		}
	}

	pairs := [][2]string{
		{domain.AccountTypePhase1, domain.AccountTypePhase2},
		{domain.AccountTypePhase1, domain.AccountTypeFunded},
		{domain.AccountTypePhase2, domain.AccountTypeFunded},
	}
	for _, pair := range pairs {
		a, okA := byLabel[pair[0]]
		b, okB := byLabel[pair[1]]
		if okA && okB {
			return []*domain.Phase{a, b}
		}
	}
	return []*domain.Phase{phases[0], phases[1]}
}
