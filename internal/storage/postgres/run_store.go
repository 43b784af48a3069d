package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/observability"
	"tradecheck/internal/storage"
)

// EvaluationRunStore implements storage.EvaluationRunStore using PostgreSQL.
type EvaluationRunStore struct {
	pool *Pool
}

// NewEvaluationRunStore creates a new EvaluationRunStore.
func NewEvaluationRunStore(pool *Pool) *EvaluationRunStore {
	return &EvaluationRunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.EvaluationRunStore = (*EvaluationRunStore)(nil)

// observe records query timing and errors for one store operation.
func observe(operation string, start time.Time, err error) {
	observability.RecordDBQuery("postgres", operation, time.Since(start).Seconds(), err)
}

// InsertRun adds a run summary. Returns ErrDuplicateKey if run_id exists.
func (s *EvaluationRunStore) InsertRun(ctx context.Context, run *domain.EvaluationRun) (err error) {
	start := time.Now()
	defer func() { observe("insert_run", start, err) }()

	if run == nil || run.RunID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO evaluation_runs (
			run_id, account_type, equity, trade_count,
			overall_status, passed, violated, not_testable,
			started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = s.pool.Exec(ctx, query,
		run.RunID, run.AccountType, run.Equity, run.TradeCount,
		string(run.OverallStatus), run.Passed, run.Violated, run.NotTestable,
		run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert evaluation run: %w", err)
	}
	return nil
}

// InsertResults adds the per-rule results of a run. Fails the entire batch
// if any (run_id, rule_number) pair exists.
func (s *EvaluationRunStore) InsertResults(ctx context.Context, runID string, results []domain.RuleResult) (err error) {
	start := time.Now()
	defer func() { observe("insert_results", start, err) }()

	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO rule_results (
			run_id, rule_number, rule_name, status, message, violations
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, r := range results {
		violations, err := json.Marshal(r.Violations)
		if err != nil {
			return fmt.Errorf("marshal violations for rule %d: %w", r.RuleNumber, err)
		}
		_, err = tx.Exec(ctx, query,
			runID, r.RuleNumber, r.RuleName, string(r.Status), r.Message, violations)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert rule result %d: %w", r.RuleNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetRun retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *EvaluationRunStore) GetRun(ctx context.Context, runID string) (_ *domain.EvaluationRun, err error) {
	start := time.Now()
	defer func() { observe("get_run", start, err) }()

	query := `
		SELECT
			run_id, account_type, equity, trade_count,
			overall_status, passed, violated, not_testable,
			started_at, completed_at
		FROM evaluation_runs
		WHERE run_id = $1
	`

	var run domain.EvaluationRun
	var status string
	err = s.pool.QueryRow(ctx, query, runID).Scan(
		&run.RunID, &run.AccountType, &run.Equity, &run.TradeCount,
		&status, &run.Passed, &run.Violated, &run.NotTestable,
		&run.StartedAt, &run.CompletedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get evaluation run: %w", err)
	}
	run.OverallStatus = domain.Status(status)
	return &run, nil
}

// GetResults retrieves a run's rule results ordered by rule number.
func (s *EvaluationRunStore) GetResults(ctx context.Context, runID string) (_ []domain.RuleResult, err error) {
	start := time.Now()
	defer func() { observe("get_results", start, err) }()

	query := `
		SELECT rule_number, rule_name, status, message, violations
		FROM rule_results
		WHERE run_id = $1
		ORDER BY rule_number ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("get rule results: %w", err)
	}
	defer rows.Close()

	var results []domain.RuleResult
	for rows.Next() {
		var r domain.RuleResult
		var status string
		var violations []byte
		if err := rows.Scan(&r.RuleNumber, &r.RuleName, &status, &r.Message, &violations); err != nil {
			return nil, fmt.Errorf("scan rule result row: %w", err)
		}
		r.Status = domain.Status(status)
		if err := json.Unmarshal(violations, &r.Violations); err != nil {
			return nil, fmt.Errorf("unmarshal violations for rule %d: %w", r.RuleNumber, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rule result rows: %w", err)
	}
	return results, nil
}

// GetRecentRuns retrieves up to limit runs, most recently started first.
func (s *EvaluationRunStore) GetRecentRuns(ctx context.Context, limit int) (_ []*domain.EvaluationRun, err error) {
	start := time.Now()
	defer func() { observe("get_recent_runs", start, err) }()

	query := `
		SELECT
			run_id, account_type, equity, trade_count,
			overall_status, passed, violated, not_testable,
			started_at, completed_at
		FROM evaluation_runs
		ORDER BY started_at DESC, run_id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.EvaluationRun
	for rows.Next() {
		var run domain.EvaluationRun
		var status string
		if err := rows.Scan(
			&run.RunID, &run.AccountType, &run.Equity, &run.TradeCount,
			&status, &run.Passed, &run.Violated, &run.NotTestable,
			&run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation run row: %w", err)
		}
		run.OverallStatus = domain.Status(status)
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluation run rows: %w", err)
	}
	return runs, nil
}
