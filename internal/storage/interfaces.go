// Package storage defines the persistence interfaces for evaluation runs
// and the trade archive, with in-memory, PostgreSQL and ClickHouse
// implementations in subpackages.
package storage

import (
	"context"

	"tradecheck/internal/domain"
)

// EvaluationRunStore persists run summaries and their per-rule results.
type EvaluationRunStore interface {
	// InsertRun adds a run summary. Returns ErrDuplicateKey if run_id exists.
	InsertRun(ctx context.Context, run *domain.EvaluationRun) error

	// InsertResults adds the per-rule results of a run. Fails the entire
	// batch if any (run_id, rule_number) pair exists.
	InsertResults(ctx context.Context, runID string, results []domain.RuleResult) error

	// GetRun retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetRun(ctx context.Context, runID string) (*domain.EvaluationRun, error)

	// GetResults retrieves a run's rule results ordered by rule number.
	GetResults(ctx context.Context, runID string) ([]domain.RuleResult, error)

	// GetRecentRuns retrieves up to limit runs, most recently started first.
	GetRecentRuns(ctx context.Context, limit int) ([]*domain.EvaluationRun, error)
}

// TradeArchiveStore keeps the normalized trade tables that runs were
// evaluated against, for audit and replay.
type TradeArchiveStore interface {
	// InsertBatch archives the trades of one run.
	InsertBatch(ctx context.Context, runID string, trades []*domain.Trade) error

	// GetByRun retrieves a run's archived trades ordered by open time.
	GetByRun(ctx context.Context, runID string) ([]*domain.Trade, error)
}
