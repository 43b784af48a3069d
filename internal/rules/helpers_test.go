package rules

import (
	"time"

	"tradecheck/internal/domain"
	"tradecheck/internal/market"
)

func at(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return ts
}

func fp(v float64) *float64 { return &v }

func minutes(n int) time.Duration { return time.Duration(n) * time.Minute }

type tradeSpec struct {
	id         string
	instrument string
	side       domain.Side
	open       string
	close      string
	lots       float64
	openPrice  float64
	stopLoss   *float64
	takeProfit *float64
}

func mkTrade(spec tradeSpec) *domain.Trade {
	open, close := at(spec.open), at(spec.close)
	price := spec.openPrice
	if price == 0 {
		price = 1.1
	}
	lots := spec.lots
	if lots == 0 {
		lots = 1.0
	}
	return &domain.Trade{
		PositionID:      spec.id,
		Instrument:      spec.instrument,
		Side:            spec.side,
		OpenTime:        open,
		CloseTime:       close,
		Lots:            lots,
		OpenPrice:       price,
		ClosePrice:      price,
		StopLoss:        spec.stopLoss,
		TakeProfit:      spec.takeProfit,
		DurationSeconds: close.Sub(open).Seconds(),
	}
}

func testParams() Params {
	return Params{
		Account: domain.AccountConfig{
			AccountType:    domain.AccountTypeFunded,
			Leverage:       50,
			MinTradingDays: 4,
		},
		Equity: 10000,
		Catalog: market.NewCatalog(map[string]float64{
			"EURUSD": 0.1,
			"GBPUSD": 0.1,
			"NAS100": 0.2,
			"XAUUSD": 0.1,
		}, nil),
	}
}

func directFundingParams() Params {
	p := testParams()
	p.Account = domain.AccountConfig{
		AccountType:    domain.AccountTypeDirectFunding,
		Leverage:       30,
		MinTradingDays: 7,
	}
	return p
}
