package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecheck/internal/domain"
)

func TestHedgingBanOppositeOverlap(t *testing.T) {
	trades := []*domain.Trade{
		mkTrade(tradeSpec{id: "P1", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:00:00Z", close: "2025-03-10T11:00:00Z"}),
		mkTrade(tradeSpec{id: "P2", instrument: "EURUSD", side: domain.SideSell,
			open: "2025-03-10T10:30:00Z", close: "2025-03-10T11:30:00Z"}),
	}

	result := NewHedgingBan().Evaluate(trades, testParams())

	assert.Equal(t, domain.StatusViolated, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "P1", result.Violations[0].PositionID)
	assert.Equal(t, "P2", result.Violations[0].RelatedPositionID)
	assert.InDelta(t, 1800, result.Violations[0].Value, 1e-9)
}

func TestHedgingBanSameSideAllowed(t *testing.T) {
	trades := []*domain.Trade{
		mkTrade(tradeSpec{id: "P1", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:00:00Z", close: "2025-03-10T11:00:00Z"}),
		mkTrade(tradeSpec{id: "P2", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:30:00Z", close: "2025-03-10T11:30:00Z"}),
	}

	result := NewHedgingBan().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestHedgingBanDifferentInstrumentsAllowed(t *testing.T) {
	trades := []*domain.Trade{
		mkTrade(tradeSpec{id: "P1", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:00:00Z", close: "2025-03-10T11:00:00Z"}),
		mkTrade(tradeSpec{id: "P2", instrument: "GBPUSD", side: domain.SideSell,
			open: "2025-03-10T10:30:00Z", close: "2025-03-10T11:30:00Z"}),
	}

	result := NewHedgingBan().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestHedgingBanOverlapBoundary(t *testing.T) {
	base := at("2025-03-10T10:00:00Z")

	t.Run("one second overlap violates", func(t *testing.T) {
		trades := []*domain.Trade{
			{PositionID: "P1", Instrument: "EURUSD", Side: domain.SideBuy,
				OpenTime: base, CloseTime: base.Add(time.Hour)},
			{PositionID: "P2", Instrument: "EURUSD", Side: domain.SideSell,
				OpenTime: base.Add(time.Hour - time.Second), CloseTime: base.Add(2 * time.Hour)},
		}
		result := NewHedgingBan().Evaluate(trades, testParams())
		assert.Equal(t, domain.StatusViolated, result.Status)
	})

	t.Run("sub-second overlap passes", func(t *testing.T) {
		trades := []*domain.Trade{
			{PositionID: "P1", Instrument: "EURUSD", Side: domain.SideBuy,
				OpenTime: base, CloseTime: base.Add(time.Hour)},
			{PositionID: "P2", Instrument: "EURUSD", Side: domain.SideSell,
				OpenTime: base.Add(time.Hour - 999*time.Millisecond), CloseTime: base.Add(2 * time.Hour)},
		}
		result := NewHedgingBan().Evaluate(trades, testParams())
		assert.Equal(t, domain.StatusPassed, result.Status)
	})

	t.Run("close exactly at open passes", func(t *testing.T) {
		trades := []*domain.Trade{
			{PositionID: "P1", Instrument: "EURUSD", Side: domain.SideBuy,
				OpenTime: base, CloseTime: base.Add(time.Hour)},
			{PositionID: "P2", Instrument: "EURUSD", Side: domain.SideSell,
				OpenTime: base.Add(time.Hour), CloseTime: base.Add(2 * time.Hour)},
		}
		result := NewHedgingBan().Evaluate(trades, testParams())
		assert.Equal(t, domain.StatusPassed, result.Status)
	})
}
