package domain

// Account type labels. These match the labels used by account providers and
// by phase selection for cross-phase comparison.
const (
	AccountTypePhase1        = "2-Step Phase 1"
	AccountTypePhase2        = "2-Step Phase 2"
	AccountTypeFunded        = "Funded Phase"
	AccountTypeDirectFunding = "Direct Funding"
)

// AccountConfig is the static configuration of one account type.
type AccountConfig struct {
	AccountType         string
	Leverage            float64
	MinTradingDays      int
	NewsAddonAllowed    bool
	WeekendAddonAllowed bool
}

// EvaluationParams are the per-run inputs that accompany an account
// configuration. Equity and add-on toggles are supplied per run, never
// persisted state.
type EvaluationParams struct {
	Equity              float64
	NewsAddonEnabled    bool
	WeekendAddonEnabled bool
}
