package commission

import "github.com/shopspring/decimal"

// ShareRole names a stakeholder participating in a commission pool.
type ShareRole string

const (
	ShareAdvisor    ShareRole = "advisor"
	ShareIntroducer ShareRole = "introducer"
	ShareManager    ShareRole = "manager"
	ShareExecutive  ShareRole = "executive_sales_manager"
)

// NormalizeShareRole validates and normalizes a share role string.
func NormalizeShareRole(value string) (ShareRole, bool) {
	switch ShareRole(value) {
	case ShareAdvisor, ShareIntroducer, ShareManager, ShareExecutive:
		return ShareRole(value), true
	default:
		return "", false
	}
}

// TableEntry maps a role to its percentage of the pool.
type TableEntry struct {
	Role    ShareRole
	Percent decimal.Decimal
}

// RoleTable is the fixed ordered distribution table. Order matters: rounding
// remainders are assigned to the first role.
type RoleTable []TableEntry

// DefaultRoleTable returns the stock deployment table.
func DefaultRoleTable() RoleTable {
	return RoleTable{
		{Role: ShareAdvisor, Percent: decimal.NewFromInt(65)},
		{Role: ShareIntroducer, Percent: decimal.NewFromInt(5)},
		{Role: ShareManager, Percent: decimal.NewFromInt(20)},
		{Role: ShareExecutive, Percent: decimal.NewFromInt(10)},
	}
}

// Validate checks the table sums to exactly 100 percent.
func (t RoleTable) Validate() error {
	if len(t) == 0 {
		return ErrEmptyRoleTable
	}
	seen := make(map[ShareRole]struct{}, len(t))
	sum := decimal.Zero
	for _, entry := range t {
		if _, ok := NormalizeShareRole(string(entry.Role)); !ok {
			return ErrUnknownShareRole
		}
		if _, dup := seen[entry.Role]; dup {
			return ErrDuplicateShareRole
		}
		seen[entry.Role] = struct{}{}
		if entry.Percent.IsNegative() {
			return ErrNegativeSharePercent
		}
		sum = sum.Add(entry.Percent)
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return ErrRoleTableNotHundred
	}
	return nil
}
