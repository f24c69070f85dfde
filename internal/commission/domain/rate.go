package commission

import (
	"github.com/shopspring/decimal"

	catalog "advisory-portal/internal/catalog/domain"
)

// ResolveRate returns the effective commission rate for a product at a
// cumulative APE volume: the base rate plus every earned band bonus.
// Qualifying bands stack additively; a later band never replaces an earlier
// one. The cumulative-volume scope (advisor-to-date, cycle-to-date) is the
// caller's responsibility.
func ResolveRate(product catalog.Product, cumulativeVolume decimal.Decimal) (decimal.Decimal, error) {
	if err := product.Validate(); err != nil {
		return decimal.Zero, err
	}

	rate := product.Rate
	if cumulativeVolume.Sign() <= 0 {
		return rate, nil
	}
	for _, band := range product.Bands {
		if band.Threshold.GreaterThan(cumulativeVolume) {
			break
		}
		rate = rate.Add(band.Bonus)
	}
	return rate, nil
}
