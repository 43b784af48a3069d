// Package news supplies the economic calendar consumed by the news trading
// rule. An empty calendar makes that rule not testable, so providers report
// emptiness honestly instead of inventing events.
package news

import (
	"context"
	"sort"
	"time"

	"tradecheck/internal/domain"
)

// Provider yields the news events overlapping a time range.
type Provider interface {
	Events(ctx context.Context, from, to time.Time) ([]domain.NewsEvent, error)
}

// Static serves a fixed, pre-sorted event list.
type Static struct {
	events []domain.NewsEvent
}

// NewStatic creates a provider over a fixed event list.
func NewStatic(events []domain.NewsEvent) *Static {
	sorted := make([]domain.NewsEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	return &Static{events: sorted}
}

// Events returns the events within [from, to].
func (s *Static) Events(_ context.Context, from, to time.Time) ([]domain.NewsEvent, error) {
	var out []domain.NewsEvent
	for _, e := range s.events {
		if e.Time.Before(from) || e.Time.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

var _ Provider = (*Static)(nil)
