package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecheck/internal/domain"
	"tradecheck/internal/storage"
)

func archiveTrade(id string, openOffset time.Duration) *domain.Trade {
	open := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC).Add(openOffset)
	close := open.Add(45 * time.Minute)
	return &domain.Trade{
		PositionID:      id,
		Instrument:      "EURUSD",
		Side:            domain.SideBuy,
		OpenTime:        open,
		CloseTime:       close,
		Lots:            0.5,
		OpenPrice:       1.0850,
		ClosePrice:      1.0870,
		StopLoss:        ptr(1.0800),
		TakeProfit:      ptr(1.0900),
		DurationSeconds: close.Sub(open).Seconds(),
	}
}

func TestTradeArchiveRoundTrip(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTradeArchiveStore(conn)
	ctx := context.Background()

	// Insert out of open-time order to exercise the read ordering.
	trades := []*domain.Trade{
		archiveTrade("P2", time.Hour),
		archiveTrade("P1", 0),
	}
	require.NoError(t, store.InsertBatch(ctx, "run-1", trades))

	got, err := store.GetByRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "P1", got[0].PositionID)
	assert.Equal(t, "P2", got[1].PositionID)

	first := got[0]
	assert.Equal(t, "EURUSD", first.Instrument)
	assert.Equal(t, domain.SideBuy, first.Side)
	assert.Equal(t, 0.5, first.Lots)
	assert.Equal(t, 1.0850, first.OpenPrice)
	require.NotNil(t, first.StopLoss)
	assert.Equal(t, 1.0800, *first.StopLoss)
	require.NotNil(t, first.TakeProfit)
	assert.Equal(t, 1.0900, *first.TakeProfit)
	assert.Equal(t, 2700.0, first.DurationSeconds)
	assert.Equal(t, time.UTC, first.OpenTime.Location())
}

func TestTradeArchiveAbsentLevels(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTradeArchiveStore(conn)
	ctx := context.Background()

	// An absent stop loss and a zero take profit are distinct after the
	// round trip; the rules treat absent and zero differently.
	trade := archiveTrade("P1", 0)
	trade.StopLoss = nil
	trade.TakeProfit = ptr(0.0)
	require.NoError(t, store.InsertBatch(ctx, "run-1", []*domain.Trade{trade}))

	got, err := store.GetByRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].StopLoss)
	require.NotNil(t, got[0].TakeProfit)
	assert.Equal(t, 0.0, *got[0].TakeProfit)
}

func TestTradeArchiveRunIsolation(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTradeArchiveStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBatch(ctx, "run-1", []*domain.Trade{archiveTrade("P1", 0)}))
	require.NoError(t, store.InsertBatch(ctx, "run-2", []*domain.Trade{archiveTrade("P2", 0)}))

	got, err := store.GetByRun(ctx, "run-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].PositionID)

	empty, err := store.GetByRun(ctx, "run-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTradeArchiveInvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTradeArchiveStore(conn)
	ctx := context.Background()

	assert.ErrorIs(t, store.InsertBatch(ctx, "", []*domain.Trade{archiveTrade("P1", 0)}), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.InsertBatch(ctx, "run-1", []*domain.Trade{{}}), storage.ErrInvalidInput)
	assert.NoError(t, store.InsertBatch(ctx, "run-1", nil))
}
