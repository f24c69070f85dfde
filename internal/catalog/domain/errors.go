package catalog

import "errors"

var (
	// ErrEmptyProductID indicates a product without an identifier.
	ErrEmptyProductID = errors.New("catalog: empty product id")
	// ErrEmptyProductName indicates a product without a display name.
	ErrEmptyProductName = errors.New("catalog: empty product name")
	// ErrRateOutOfRange indicates a commission rate outside [0, 1].
	ErrRateOutOfRange = errors.New("catalog: commission rate out of range")
	// ErrMarginOutOfRange indicates a margin outside [0, 1].
	ErrMarginOutOfRange = errors.New("catalog: margin out of range")
	// ErrBandThresholdNegative indicates a negative band threshold.
	ErrBandThresholdNegative = errors.New("catalog: negative band threshold")
	// ErrBandBonusNegative indicates a negative band bonus.
	ErrBandBonusNegative = errors.New("catalog: negative band bonus")
	// ErrBandThresholdsNotIncreasing indicates thresholds are not strictly increasing.
	ErrBandThresholdsNotIncreasing = errors.New("catalog: band thresholds not strictly increasing")
	// ErrProductNotFound indicates a lookup missed.
	ErrProductNotFound = errors.New("catalog: product not found")
)
