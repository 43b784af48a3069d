package news

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tradecheck/internal/domain"
)

// fileEvent is the JSON shape of one calendar entry.
type fileEvent struct {
	Time     string `json:"time"`
	Currency string `json:"currency"`
	Title    string `json:"title"`
}

// File loads a calendar from a JSON file once and serves it like Static.
type File struct {
	static *Static
}

// NewFile parses the calendar file. Event times must be RFC 3339; they are
// normalized to UTC.
func NewFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read news calendar: %w", err)
	}

	var raw []fileEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse news calendar %s: %w", path, err)
	}

	events := make([]domain.NewsEvent, 0, len(raw))
	for i, e := range raw {
		ts, err := time.Parse(time.RFC3339, e.Time)
		if err != nil {
			return nil, fmt.Errorf("news calendar %s event %d: %w", path, i, err)
		}
		if e.Currency == "" {
			return nil, fmt.Errorf("news calendar %s event %d: missing currency", path, i)
		}
		events = append(events, domain.NewsEvent{
			Time:     ts.UTC(),
			Currency: e.Currency,
			Title:    e.Title,
		})
	}

	return &File{static: NewStatic(events)}, nil
}

// Events returns the events within [from, to].
func (f *File) Events(ctx context.Context, from, to time.Time) ([]domain.NewsEvent, error) {
	return f.static.Events(ctx, from, to)
}

var _ Provider = (*File)(nil)
