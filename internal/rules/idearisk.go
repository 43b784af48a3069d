package rules

import (
	"fmt"
	"sort"
	"strings"

	"tradecheck/internal/domain"
)

// IdeaRisk (Rule 17) applies to Direct Funding accounts only: same-symbol,
// same-direction trades whose open times chain with gaps of at most five
// minutes (one minute for gold) form one "trade idea", and the combined
// stop-loss risk of an idea must stay within 2.05% of equity.
type IdeaRisk struct{}

func NewIdeaRisk() *IdeaRisk { return &IdeaRisk{} }

func (r *IdeaRisk) RuleNumber() int { return 17 }
func (r *IdeaRisk) Name() string    { return "Max 2% Risk per Trade Idea" }

func (r *IdeaRisk) Evaluate(trades []*domain.Trade, params Params) domain.RuleResult {
	if params.Account.AccountType != domain.AccountTypeDirectFunding {
		return notTestable(17, r.Name(), fmt.Sprintf(
			"only applicable to Direct Funding accounts, current type: %s",
			params.Account.AccountType))
	}

	var withStopLoss []*domain.Trade
	for _, t := range trades {
		if t.StopLoss != nil {
			withStopLoss = append(withStopLoss, t)
		}
	}
	if len(withStopLoss) == 0 {
		return notTestable(17, r.Name(), "no trades have stop loss values, cannot calculate risk")
	}

	var violations []domain.Violation
	for _, idea := range groupIntoIdeas(withStopLoss) {
		totalRisk := 0.0
		for _, t := range idea {
			if risk, ok := params.Catalog.TradeRisk(t, params.Equity); ok {
				totalRisk += risk.Dollars
			}
		}

		riskPercent := 0.0
		if params.Equity > 0 {
			riskPercent = totalRisk / params.Equity * 100
		}
		if riskPercent <= ideaMaxRiskPercent {
			continue
		}

		first := idea[0]
		ids := make([]string, 0, len(idea))
		for _, t := range idea {
			ids = append(ids, t.PositionID)
		}

		violations = append(violations, domain.Violation{
			PositionID: first.PositionID,
			Instrument: first.Instrument,
			Side:       first.Side,
			Timestamp:  first.OpenTime,
			Kind:       "IDEA_RISK",
			Value:      riskPercent,
			Threshold:  ideaMaxRiskPercent,
			Detail: fmt.Sprintf(
				"trade idea on %s %s (%d trades: %s) risks $%.2f, %.2f%% of equity",
				first.Instrument, first.Side, len(idea), strings.Join(ids, ", "),
				totalRisk, riskPercent),
		})
	}

	sortViolations(violations)

	if len(violations) > 0 {
		return violated(17, r.Name(), fmt.Sprintf(
			"found %d trade idea(s) over the %.2f%% risk limit",
			len(violations), ideaMaxRiskPercent), violations)
	}
	return passed(17, r.Name(), fmt.Sprintf(
		"no trade idea exceeds %.2f%% of equity", ideaMaxRiskPercent))
}

// groupIntoIdeas chains same-instrument same-direction trades whose
// consecutive open-time gaps stay within the idea gap threshold.
func groupIntoIdeas(trades []*domain.Trade) [][]*domain.Trade {
	type key struct {
		instrument string
		side       domain.Side
	}
	groups := make(map[key][]*domain.Trade)
	keys := make([]key, 0)
	for _, t := range trades {
		k := key{t.Instrument, t.Side}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], t)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].instrument != keys[j].instrument {
			return keys[i].instrument < keys[j].instrument
		}
		return keys[i].side < keys[j].side
	})

	var ideas [][]*domain.Trade
	for _, k := range keys {
		group := groups[k]
		sort.Slice(group, func(i, j int) bool { return group[i].OpenTime.Before(group[j].OpenTime) })

		gap := ideaGapSeconds
		if strings.HasPrefix(k.instrument, "XAUUSD") {
			gap = ideaGapGoldSeconds
		}

		var current []*domain.Trade
		for _, t := range group {
			if len(current) > 0 &&
				t.OpenTime.Sub(current[len(current)-1].OpenTime).Seconds() > gap {
				ideas = append(ideas, current)
				current = nil
			}
			current = append(current, t)
		}
		if len(current) > 0 {
			ideas = append(ideas, current)
		}
	}
	return ideas
}
