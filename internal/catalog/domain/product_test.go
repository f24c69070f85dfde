package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validProduct() Product {
	return Product{
		ID:       "prod-term-life",
		Name:     "Term Life",
		Provider: "Aviva",
		Rate:     decimal.RequireFromString("0.03"),
		Margin:   decimal.RequireFromString("0.10"),
		Bands: []Band{
			{Threshold: decimal.NewFromInt(50000), Bonus: decimal.RequireFromString("0.005")},
			{Threshold: decimal.NewFromInt(100000), Bonus: decimal.RequireFromString("0.005")},
		},
	}
}

func TestProductValidate_OK(t *testing.T) {
	if err := validProduct().Validate(); err != nil {
		t.Fatalf("expected valid product, got %v", err)
	}
}

func TestProductValidate_RateOutOfRange(t *testing.T) {
	product := validProduct()
	product.Rate = decimal.RequireFromString("-0.01")
	if !errors.Is(product.Validate(), ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange")
	}
	product.Rate = decimal.RequireFromString("1.01")
	if !errors.Is(product.Validate(), ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange for rate > 1")
	}
}

func TestProductValidate_MarginOutOfRange(t *testing.T) {
	product := validProduct()
	product.Margin = decimal.RequireFromString("1.5")
	if !errors.Is(product.Validate(), ErrMarginOutOfRange) {
		t.Fatalf("expected ErrMarginOutOfRange")
	}
}

func TestProductValidate_BandThresholdsMustStrictlyIncrease(t *testing.T) {
	product := validProduct()
	product.Bands[1].Threshold = product.Bands[0].Threshold
	if !errors.Is(product.Validate(), ErrBandThresholdsNotIncreasing) {
		t.Fatalf("expected ErrBandThresholdsNotIncreasing for equal thresholds")
	}
	product.Bands[1].Threshold = decimal.NewFromInt(40000)
	if !errors.Is(product.Validate(), ErrBandThresholdsNotIncreasing) {
		t.Fatalf("expected ErrBandThresholdsNotIncreasing for decreasing thresholds")
	}
}

func TestProductValidate_NegativeBandValues(t *testing.T) {
	product := validProduct()
	product.Bands[0].Threshold = decimal.NewFromInt(-1)
	if !errors.Is(product.Validate(), ErrBandThresholdNegative) {
		t.Fatalf("expected ErrBandThresholdNegative")
	}
	product = validProduct()
	product.Bands[0].Bonus = decimal.RequireFromString("-0.001")
	if !errors.Is(product.Validate(), ErrBandBonusNegative) {
		t.Fatalf("expected ErrBandBonusNegative")
	}
}
