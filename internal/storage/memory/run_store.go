// Package memory provides in-memory store implementations for tests and
// runs that do not need persistence.
package memory

import (
	"context"
	"sort"
	"sync"

	"tradecheck/internal/domain"
	"tradecheck/internal/storage"
)

// EvaluationRunStore is an in-memory implementation of storage.EvaluationRunStore.
type EvaluationRunStore struct {
	mu      sync.RWMutex
	runs    map[string]*domain.EvaluationRun
	results map[string][]domain.RuleResult // keyed by run_id
}

// NewEvaluationRunStore creates a new in-memory run store.
func NewEvaluationRunStore() *EvaluationRunStore {
	return &EvaluationRunStore{
		runs:    make(map[string]*domain.EvaluationRun),
		results: make(map[string][]domain.RuleResult),
	}
}

var _ storage.EvaluationRunStore = (*EvaluationRunStore)(nil)

// InsertRun adds a run summary. Returns ErrDuplicateKey if run_id exists.
func (s *EvaluationRunStore) InsertRun(_ context.Context, run *domain.EvaluationRun) error {
	if run == nil || run.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *run
	s.runs[run.RunID] = &copy
	return nil
}

// InsertResults adds the per-rule results of a run. Fails the entire batch
// if any rule number is already stored for the run.
func (s *EvaluationRunStore) InsertResults(_ context.Context, runID string, results []domain.RuleResult) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[int]struct{}, len(s.results[runID]))
	for _, r := range s.results[runID] {
		existing[r.RuleNumber] = struct{}{}
	}
	batch := make(map[int]struct{}, len(results))
	for _, r := range results {
		if _, dup := existing[r.RuleNumber]; dup {
			return storage.ErrDuplicateKey
		}
		if _, dup := batch[r.RuleNumber]; dup {
			return storage.ErrDuplicateKey
		}
		batch[r.RuleNumber] = struct{}{}
	}

	s.results[runID] = append(s.results[runID], results...)
	return nil
}

// GetRun retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *EvaluationRunStore) GetRun(_ context.Context, runID string) (*domain.EvaluationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *run
	return &copy, nil
}

// GetResults retrieves a run's rule results ordered by rule number.
func (s *EvaluationRunStore) GetResults(_ context.Context, runID string) ([]domain.RuleResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.RuleResult, len(s.results[runID]))
	copy(results, s.results[runID])
	sort.Slice(results, func(i, j int) bool { return results[i].RuleNumber < results[j].RuleNumber })
	return results, nil
}

// GetRecentRuns retrieves up to limit runs, most recently started first.
func (s *EvaluationRunStore) GetRecentRuns(_ context.Context, limit int) ([]*domain.EvaluationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*domain.EvaluationRun, 0, len(s.runs))
	for _, run := range s.runs {
		copy := *run
		runs = append(runs, &copy)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].RunID > runs[j].RunID
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
