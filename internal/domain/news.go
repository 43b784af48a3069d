package domain

import "time"

// NewsEvent is one scheduled economic calendar entry. Events are supplied
// by an external provider before evaluation begins; the engine never
// fetches them itself.
type NewsEvent struct {
	Time     time.Time // UTC
	Currency string    // ISO code, e.g. "USD"
	Title    string
}
