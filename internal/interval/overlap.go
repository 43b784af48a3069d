// Package interval provides the time primitives shared by rule evaluators:
// interval overlap with the global one-second tolerance and the UTC weekend
// window calendar.
package interval

import "time"

// MinOverlapSeconds is the global overlap tolerance. Two intervals count as
// overlapping only when they share at least this many seconds.
const MinOverlapSeconds = 1.0

// Overlap reports whether [aStart,aEnd] and [bStart,bEnd] overlap by at
// least MinOverlapSeconds, and returns the overlap duration in seconds
// (zero when the intervals are disjoint).
func Overlap(aStart, aEnd, bStart, bEnd time.Time) (bool, float64) {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}

	seconds := end.Sub(start).Seconds()
	if seconds < 0 {
		return false, 0
	}
	return seconds >= MinOverlapSeconds, seconds
}
