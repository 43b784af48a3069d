package normalization

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts tried in order. The broker's US export format comes
// first, then ISO variants. Naive timestamps are taken as UTC. Go's parser
// accepts fractional seconds after any seconds field, so these layouts
// cover inputs with and without microseconds.
var timestampLayouts = []string{
	"1/2/2006, 3:04:05 PM",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"02.01.2006 15:04:05",
}

// parseTimestamp parses a trade timestamp, trying each known layout before
// giving up. The result is always UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
