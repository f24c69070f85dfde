package commission

import (
	"github.com/shopspring/decimal"

	payments "advisory-portal/internal/payments/domain"
)

// Method identifies which premium basis a commission was computed on.
type Method string

const (
	MethodAPE      Method = "APE"
	MethodReceipts Method = "Receipts"
)

// Computation is the result of computing commission for one payment record.
type Computation struct {
	Method Method
	Basis  decimal.Decimal
	Base   decimal.Decimal
	Pool   decimal.Decimal
}

// Compute derives the commission base and distributable pool for a payment.
// The basis is the greater of receipts and APE at computation time; the
// commission base is basis x effective rate, and the pool is the base less
// the firm's retained margin. Amounts stay unrounded decimals; rounding
// happens at distribution and display boundaries only.
func Compute(record payments.Record, effectiveRate, margin decimal.Decimal) (Computation, error) {
	if err := record.Validate(); err != nil {
		return Computation{}, err
	}
	one := decimal.NewFromInt(1)
	if effectiveRate.IsNegative() || effectiveRate.GreaterThan(one) {
		return Computation{}, ErrRateOutOfRange
	}
	if margin.IsNegative() || margin.GreaterThan(one) {
		return Computation{}, ErrMarginOutOfRange
	}

	method := MethodAPE
	basis := record.APE
	if record.Receipts.GreaterThan(record.APE) {
		method = MethodReceipts
		basis = record.Receipts
	}

	base := basis.Mul(effectiveRate)
	pool := base.Mul(one.Sub(margin))
	return Computation{Method: method, Basis: basis, Base: base, Pool: pool}, nil
}
