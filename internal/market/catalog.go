// Package market holds the instrument-aware money math: point value lookup,
// stop-loss risk, margin and notional volume.
package market

import "strings"

// Contract sizes in units of base currency.
const (
	StandardContractSize = 100000.0
	MiniContractSize     = 10000.0
	MicroContractSize    = 1000.0
)

// DefaultValuePerPoint is used when an instrument cannot be resolved
// against the catalog. Unresolved lookups are non-fatal.
const DefaultValuePerPoint = 0.1

// Catalog resolves instrument symbols to their monetary properties.
// Broker suffixes (EURUSD.a) resolve via longest-prefix match.
type Catalog struct {
	valuePerPoint map[string]float64
	contractSizes map[string]float64
}

// NewCatalog creates a catalog from a per-instrument point value table and
// optional per-instrument contract size overrides. Either map may be nil.
func NewCatalog(valuePerPoint, contractSizes map[string]float64) *Catalog {
	if valuePerPoint == nil {
		valuePerPoint = map[string]float64{}
	}
	if contractSizes == nil {
		contractSizes = map[string]float64{}
	}
	return &Catalog{valuePerPoint: valuePerPoint, contractSizes: contractSizes}
}

// ValuePerPoint returns the monetary value of a one-point move for the
// instrument. Resolution order: exact match, longest configured prefix,
// then DefaultValuePerPoint. The bool reports whether the symbol resolved.
func (c *Catalog) ValuePerPoint(instrument string) (float64, bool) {
	if v, ok := c.valuePerPoint[instrument]; ok {
		return v, true
	}

	bestLen := 0
	bestVal := 0.0
	for key, v := range c.valuePerPoint {
		if strings.HasPrefix(instrument, key) && len(key) > bestLen {
			bestLen = len(key)
			bestVal = v
		}
	}
	if bestLen > 0 {
		return bestVal, true
	}
	return DefaultValuePerPoint, false
}

// ContractSize returns the contract size for the instrument's base symbol
// (suffix after '.' stripped), falling back to the standard lot size.
func (c *Catalog) ContractSize(instrument string) float64 {
	base := strings.ToUpper(instrument)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if v, ok := c.contractSizes[base]; ok {
		return v
	}
	return StandardContractSize
}

// CurrencyPair extracts the base and quote currency from an instrument
// symbol. Metals quote against USD; indices and other symbols shorter than
// six characters have no currency pair.
func CurrencyPair(instrument string) (base, quote string, ok bool) {
	switch {
	case strings.HasPrefix(instrument, "XAU"):
		return "XAU", "USD", true
	case strings.HasPrefix(instrument, "XAG"):
		return "XAG", "USD", true
	}
	if len(instrument) >= 6 {
		return instrument[:3], instrument[3:6], true
	}
	return "", "", false
}
