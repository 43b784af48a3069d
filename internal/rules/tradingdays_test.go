package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecheck/internal/domain"
)

func TestMinTradingDaysZeroMinimumAlwaysPasses(t *testing.T) {
	p := testParams()
	p.Account.AccountType = domain.AccountTypePhase1
	p.Account.MinTradingDays = 0

	result := NewMinTradingDays().Evaluate(nil, p)
	assert.Equal(t, domain.StatusPassed, result.Status)
}

func TestMinTradingDaysBelowMinimumViolates(t *testing.T) {
	// Funded accounts need 4 distinct days; two trades on the same day plus
	// one more day gives only 2.
	trades := []*domain.Trade{
		mkTrade(tradeSpec{id: "P1", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T10:00:00Z", close: "2025-03-10T11:00:00Z"}),
		mkTrade(tradeSpec{id: "P2", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-10T14:00:00Z", close: "2025-03-10T15:00:00Z"}),
		mkTrade(tradeSpec{id: "P3", instrument: "EURUSD", side: domain.SideBuy,
			open: "2025-03-11T10:00:00Z", close: "2025-03-11T11:00:00Z"}),
	}

	result := NewMinTradingDays().Evaluate(trades, testParams())

	assert.Equal(t, domain.StatusViolated, result.Status)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, 2.0, result.Violations[0].Value)
	assert.Equal(t, 4.0, result.Violations[0].Threshold)
}

func TestMinTradingDaysAtMinimumPasses(t *testing.T) {
	var trades []*domain.Trade
	for _, day := range []string{"10", "11", "12", "13"} {
		trades = append(trades, mkTrade(tradeSpec{
			id: "P" + day, instrument: "EURUSD", side: domain.SideBuy,
			open:  "2025-03-" + day + "T10:00:00Z",
			close: "2025-03-" + day + "T11:00:00Z",
		}))
	}

	result := NewMinTradingDays().Evaluate(trades, testParams())
	assert.Equal(t, domain.StatusPassed, result.Status)
}
