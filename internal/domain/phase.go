package domain

// Phase is one labeled stage of an account's trading history, e.g. an
// evaluation phase versus the funded phase. Rules that compare behavior
// across phases receive two of these; all other rules see the phases
// concatenated into one table.
type Phase struct {
	Label  string
	Trades []*Trade
}
