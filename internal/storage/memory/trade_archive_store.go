package memory

import (
	"context"
	"sort"
	"sync"

	"tradecheck/internal/domain"
	"tradecheck/internal/storage"
)

// TradeArchiveStore is an in-memory implementation of storage.TradeArchiveStore.
type TradeArchiveStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.Trade // keyed by run_id
}

// NewTradeArchiveStore creates a new in-memory trade archive.
func NewTradeArchiveStore() *TradeArchiveStore {
	return &TradeArchiveStore{data: make(map[string][]*domain.Trade)}
}

var _ storage.TradeArchiveStore = (*TradeArchiveStore)(nil)

// InsertBatch archives the trades of one run.
func (s *TradeArchiveStore) InsertBatch(_ context.Context, runID string, trades []*domain.Trade) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	for _, t := range trades {
		if t == nil || t.PositionID == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range trades {
		copy := *t
		s.data[runID] = append(s.data[runID], &copy)
	}
	return nil
}

// GetByRun retrieves a run's archived trades ordered by open time.
func (s *TradeArchiveStore) GetByRun(_ context.Context, runID string) ([]*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]*domain.Trade, 0, len(s.data[runID]))
	for _, t := range s.data[runID] {
		copy := *t
		trades = append(trades, &copy)
	}
	sort.Slice(trades, func(i, j int) bool {
		if !trades[i].OpenTime.Equal(trades[j].OpenTime) {
			return trades[i].OpenTime.Before(trades[j].OpenTime)
		}
		return trades[i].PositionID < trades[j].PositionID
	})
	return trades, nil
}
