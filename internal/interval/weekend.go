package interval

import "time"

// The weekend trading ban runs Friday 22:00 UTC to Sunday 22:00 UTC.
const (
	weekendStartHour = 22
	weekendEndHour   = 22
)

// Window is a half-open [Start, End) time span.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsWeekend reports whether ts falls inside the weekend window:
// Friday at or after 22:00 UTC, all of Saturday, or Sunday before 22:00 UTC.
func IsWeekend(ts time.Time) bool {
	ts = ts.UTC()
	switch ts.Weekday() {
	case time.Friday:
		return ts.Hour() >= weekendStartHour
	case time.Saturday:
		return true
	case time.Sunday:
		return ts.Hour() < weekendEndHour
	}
	return false
}

// WeekendWindows enumerates every weekend window intersecting
// [rangeStart, rangeEnd]. Window boundaries are absolute UTC instants,
// independent of any trade's local timezone.
func WeekendWindows(rangeStart, rangeEnd time.Time) []Window {
	rangeStart = rangeStart.UTC()
	rangeEnd = rangeEnd.UTC()

	// Back up to the Friday at or before the range start.
	day := time.Date(rangeStart.Year(), rangeStart.Month(), rangeStart.Day(), 0, 0, 0, 0, time.UTC)
	daysSinceFriday := (int(day.Weekday()) - int(time.Friday) + 7) % 7
	friday := day.AddDate(0, 0, -daysSinceFriday)

	var windows []Window
	for !friday.After(rangeEnd.AddDate(0, 0, 7)) {
		start := friday.Add(weekendStartHour * time.Hour)
		end := start.Add(48 * time.Hour)
		if !end.Before(rangeStart) && !start.After(rangeEnd) {
			windows = append(windows, Window{Start: start, End: end})
		}
		friday = friday.AddDate(0, 0, 7)
	}
	return windows
}
