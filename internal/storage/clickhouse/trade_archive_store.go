package clickhouse

import (
	"context"
	"fmt"
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/storage"
)

// TradeArchiveStore implements storage.TradeArchiveStore using ClickHouse.
// Optional price levels are stored as a flag plus a zero-defaulted value so
// an absent stop loss survives the round trip distinct from a zero one.
type TradeArchiveStore struct {
	conn *Conn
}

// NewTradeArchiveStore creates a new TradeArchiveStore.
func NewTradeArchiveStore(conn *Conn) *TradeArchiveStore {
	return &TradeArchiveStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TradeArchiveStore = (*TradeArchiveStore)(nil)

// InsertBatch archives the trades of one run.
func (s *TradeArchiveStore) InsertBatch(ctx context.Context, runID string, trades []*domain.Trade) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(trades) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO trade_archive (
			run_id, position_id, instrument, side,
			open_time, close_time, lots, open_price, close_price,
			has_stop_loss, stop_loss, has_take_profit, take_profit,
			duration_seconds
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare trade archive batch: %w", err)
	}

	for _, t := range trades {
		if t == nil || t.PositionID == "" {
			return storage.ErrInvalidInput
		}
		hasSL, sl := levelColumns(t.StopLoss)
		hasTP, tp := levelColumns(t.TakeProfit)
		err := batch.Append(
			runID, t.PositionID, t.Instrument, string(t.Side),
			t.OpenTime, t.CloseTime, t.Lots, t.OpenPrice, t.ClosePrice,
			hasSL, sl, hasTP, tp,
			t.DurationSeconds,
		)
		if err != nil {
			return fmt.Errorf("append trade %s: %w", t.PositionID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send trade archive batch: %w", err)
	}
	return nil
}

// GetByRun retrieves a run's archived trades ordered by open time.
func (s *TradeArchiveStore) GetByRun(ctx context.Context, runID string) ([]*domain.Trade, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT
			position_id, instrument, side,
			open_time, close_time, lots, open_price, close_price,
			has_stop_loss, stop_loss, has_take_profit, take_profit,
			duration_seconds
		FROM trade_archive
		WHERE run_id = ?
		ORDER BY open_time ASC, position_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query trade archive: %w", err)
	}
	defer rows.Close()

	var trades []*domain.Trade
	for rows.Next() {
		var (
			t            domain.Trade
			side         string
			open, close  time.Time
			hasSL, hasTP uint8
			sl, tp       float64
		)
		err := rows.Scan(
			&t.PositionID, &t.Instrument, &side,
			&open, &close, &t.Lots, &t.OpenPrice, &t.ClosePrice,
			&hasSL, &sl, &hasTP, &tp,
			&t.DurationSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trade archive row: %w", err)
		}
		t.Side = domain.Side(side)
		t.OpenTime = open.UTC()
		t.CloseTime = close.UTC()
		if hasSL == 1 {
			v := sl
			t.StopLoss = &v
		}
		if hasTP == 1 {
			v := tp
			t.TakeProfit = &v
		}
		trades = append(trades, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade archive rows: %w", err)
	}
	return trades, nil
}

func levelColumns(level *float64) (uint8, float64) {
	if level == nil {
		return 0, 0
	}
	return 1, *level
}
