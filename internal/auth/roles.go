package auth

// Role represents a portal user role.
type Role string

const (
	RoleClient    Role = "client"
	RoleReferral  Role = "referral"
	RoleAdvisor   Role = "advisor"
	RoleHR        Role = "hr"
	RoleManager   Role = "manager"
	RoleExecutive Role = "executive"
	RoleAdmin     Role = "admin"
)

// NormalizeRole validates and normalizes a role string.
func NormalizeRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleClient, RoleReferral, RoleAdvisor, RoleHR, RoleManager, RoleExecutive, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

// RoleAtLeast returns true when role satisfies required role.
func RoleAtLeast(role Role, required Role) bool {
	return roleRank(role) >= roleRank(required)
}

// CanExport is the single export predicate consulted by every export path.
// Client and referral-partner roles may view some screens but never export.
func CanExport(role Role) bool {
	switch role {
	case RoleAdvisor, RoleHR, RoleManager, RoleExecutive, RoleAdmin:
		return true
	default:
		return false
	}
}

func roleRank(role Role) int {
	switch role {
	case RoleClient, RoleReferral:
		return 1
	case RoleAdvisor:
		return 2
	case RoleHR:
		return 3
	case RoleManager:
		return 4
	case RoleExecutive:
		return 5
	case RoleAdmin:
		return 6
	default:
		return 0
	}
}
