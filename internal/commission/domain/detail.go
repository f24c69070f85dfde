package commission

import (
	"time"

	"github.com/shopspring/decimal"

	payments "advisory-portal/internal/payments/domain"
)

// DetailRow is the derived commission detail for one payment record.
// Rows are pure derivations: they carry no identity beyond the source
// payment's id and are replaced on recomputation, never mutated.
type DetailRow struct {
	PaymentID     string
	Date          time.Time
	Provider      string
	ProductID     string
	ProductName   string
	Advisor       string
	Introducer    string
	Method        Method
	RatePercent   decimal.Decimal
	MarginPercent decimal.Decimal
	APE           decimal.Decimal
	Receipts      decimal.Decimal
	Base          decimal.Decimal
	Pool          decimal.Decimal
	Status        payments.Status
	Shares        []RoleShare
}

// Share returns the amount allocated to the role, or zero when absent.
func (r DetailRow) Share(role ShareRole) decimal.Decimal {
	for _, share := range r.Shares {
		if share.Role == role {
			return share.Amount
		}
	}
	return decimal.Zero
}
