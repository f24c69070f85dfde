package catalog

import (
	"github.com/shopspring/decimal"
)

// Band grants an additive rate bonus once cumulative APE reaches Threshold.
type Band struct {
	Threshold decimal.Decimal
	Bonus     decimal.Decimal
}

// Product is a sellable product with its commission rate, margin and bands.
// Rate and Margin are fractions in [0, 1]; Bands are ordered by threshold.
type Product struct {
	ID       string
	Name     string
	Provider string
	Rate     decimal.Decimal
	Margin   decimal.Decimal
	Bands    []Band
}

// Validate rejects malformed products. Bad rates and thresholds are errors,
// never clamped: downstream money figures depend on them.
func (p Product) Validate() error {
	if p.ID == "" {
		return ErrEmptyProductID
	}
	if p.Name == "" {
		return ErrEmptyProductName
	}
	one := decimal.NewFromInt(1)
	if p.Rate.IsNegative() || p.Rate.GreaterThan(one) {
		return ErrRateOutOfRange
	}
	if p.Margin.IsNegative() || p.Margin.GreaterThan(one) {
		return ErrMarginOutOfRange
	}
	for i, band := range p.Bands {
		if band.Threshold.IsNegative() {
			return ErrBandThresholdNegative
		}
		if band.Bonus.IsNegative() {
			return ErrBandBonusNegative
		}
		if i > 0 && !p.Bands[i-1].Threshold.LessThan(band.Threshold) {
			return ErrBandThresholdsNotIncreasing
		}
	}
	return nil
}
