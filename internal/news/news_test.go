package news

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecheck/internal/domain"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStaticFiltersAndSorts(t *testing.T) {
	p := NewStatic([]domain.NewsEvent{
		{Time: ts("2025-03-12T14:00:00Z"), Currency: "USD", Title: "FOMC"},
		{Time: ts("2025-03-10T10:00:00Z"), Currency: "EUR", Title: "ECB"},
		{Time: ts("2025-03-20T10:00:00Z"), Currency: "GBP", Title: "BOE"},
	})

	events, err := p.Events(context.Background(), ts("2025-03-09T00:00:00Z"), ts("2025-03-15T00:00:00Z"))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "ECB", events[0].Title)
	assert.Equal(t, "FOMC", events[1].Title)
}

func TestStaticEmptyRange(t *testing.T) {
	p := NewStatic([]domain.NewsEvent{
		{Time: ts("2025-03-10T10:00:00Z"), Currency: "USD", Title: "CPI"},
	})

	events, err := p.Events(context.Background(), ts("2025-04-01T00:00:00Z"), ts("2025-04-30T00:00:00Z"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFileLoadsCalendar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	data := []byte(`[
		{"time": "2025-03-10T10:00:00+02:00", "currency": "USD", "title": "CPI"},
		{"time": "2025-03-11T14:00:00Z", "currency": "EUR", "title": "ECB Rate Decision"}
	]`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := NewFile(path)
	require.NoError(t, err)

	events, err := p.Events(context.Background(), ts("2025-03-01T00:00:00Z"), ts("2025-03-31T00:00:00Z"))
	require.NoError(t, err)

	require.Len(t, events, 2)
	// Offsets are normalized to UTC.
	assert.Equal(t, ts("2025-03-10T08:00:00Z"), events[0].Time)
	assert.Equal(t, "USD", events[0].Currency)
}

func TestFileRejectsBadTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	data := []byte(`[{"time": "yesterday", "currency": "USD", "title": "CPI"}]`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := NewFile(path)
	assert.Error(t, err)
}

func TestFileRejectsMissingCurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	data := []byte(`[{"time": "2025-03-10T10:00:00Z", "title": "CPI"}]`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := NewFile(path)
	assert.Error(t, err)
}

func TestFileMissing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
