package classify

import (
	"github.com/shopspring/decimal"
)

// Mode selects how a price delta is measured against the threshold.
type Mode string

const (
	// Absolute compares the delta in currency units.
	Absolute Mode = "absolute"
	// Relative compares the delta as a ratio of the catalog price.
	Relative Mode = "relative"
)

// PricePolicy decides whether a vendor price has drifted far enough from the
// catalog price to need human review. The threshold is a tunable parameter,
// not domain knowledge baked into classification.
type PricePolicy struct {
	Threshold decimal.Decimal
	Mode      Mode
}

// DefaultPolicy allows an absolute drift of 5 currency units.
func DefaultPolicy() PricePolicy {
	return PricePolicy{Threshold: decimal.NewFromInt(5), Mode: Absolute}
}

// Exceeds reports whether the delta between the catalog and vendor price is
// beyond the threshold. A delta exactly at the threshold does not exceed it.
// In relative mode a zero catalog price falls back to an absolute compare,
// since a ratio to zero is meaningless.
func (p PricePolicy) Exceeds(catalogPrice, vendorPrice decimal.Decimal) bool {
	delta := catalogPrice.Sub(vendorPrice).Abs()

	if p.Mode == Relative && !catalogPrice.IsZero() {
		return delta.Div(catalogPrice.Abs()).GreaterThan(p.Threshold)
	}
	return delta.GreaterThan(p.Threshold)
}
