package commission

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoleShare is one stakeholder's cut of a commission pool.
type RoleShare struct {
	Role    ShareRole
	Percent decimal.Decimal
	Amount  decimal.Decimal
}

// Distribute splits a pool across the table's roles. Roles listed in absent
// are not applicable to this payment; their percentage is redistributed
// proportionally among the remaining roles before rounding, never dropped.
// Each share is rounded with banker's rounding to 2 places and the rounding
// remainder is assigned to the first applicable role, so the share amounts
// always sum exactly to the rounded pool.
func Distribute(pool decimal.Decimal, table RoleTable, absent ...ShareRole) ([]RoleShare, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if pool.IsNegative() {
		return nil, ErrNegativePool
	}

	excluded := make(map[ShareRole]struct{}, len(absent))
	for _, role := range absent {
		excluded[role] = struct{}{}
	}

	active := make([]TableEntry, 0, len(table))
	activeSum := decimal.Zero
	for _, entry := range table {
		if _, skip := excluded[entry.Role]; skip {
			continue
		}
		active = append(active, entry)
		activeSum = activeSum.Add(entry.Percent)
	}
	if len(active) == 0 || activeSum.IsZero() {
		return nil, ErrNoApplicableRoles
	}

	shares := make([]RoleShare, len(active))
	percentSum := decimal.Zero
	for i, entry := range active {
		percent := entry.Percent.Mul(hundred).DivRound(activeSum, 4)
		shares[i] = RoleShare{Role: entry.Role, Percent: percent}
		percentSum = percentSum.Add(percent)
	}
	// Rounding drift on the redistributed percentages lands on the first
	// role, mirroring the amount reconciliation below.
	shares[0].Percent = shares[0].Percent.Add(hundred.Sub(percentSum))

	poolRounded := pool.RoundBank(2)
	amountSum := decimal.Zero
	for i := range shares {
		amount := poolRounded.Mul(shares[i].Percent).Div(hundred).RoundBank(2)
		shares[i].Amount = amount
		amountSum = amountSum.Add(amount)
	}
	shares[0].Amount = shares[0].Amount.Add(poolRounded.Sub(amountSum))

	return shares, nil
}
