package auth

import "context"

// Scope describes which advisors' rows a caller may see.
// It is applied inside the reporting filter step so on-screen totals and
// exported totals can never diverge.
type Scope struct {
	All      bool
	Advisors map[string]struct{}
}

// Allows reports whether rows for the advisor are visible under the scope.
func (s Scope) Allows(advisor string) bool {
	if s.All {
		return true
	}
	_, ok := s.Advisors[advisor]
	return ok
}

// TeamMembershipChecker resolves a manager's team advisor identifiers.
type TeamMembershipChecker interface {
	TeamAdvisors(ctx context.Context, manager string) ([]string, error)
}

// VisibilityFor resolves the row visibility scope for a caller identity.
// Advisors see their own rows; managers see their team plus themselves, or
// the whole firm when no team collaborator is wired; hr, executive and
// admin see everything. Client and referral callers see nothing here; the
// route policy keeps them off reporting endpoints entirely.
func VisibilityFor(ctx context.Context, identity Identity, teams TeamMembershipChecker) (Scope, error) {
	switch identity.Role {
	case RoleHR, RoleExecutive, RoleAdmin:
		return Scope{All: true}, nil
	case RoleAdvisor:
		return Scope{Advisors: map[string]struct{}{identity.Subject: {}}}, nil
	case RoleManager:
		if teams == nil {
			return Scope{All: true}, nil
		}
		members, err := teams.TeamAdvisors(ctx, identity.Subject)
		if err != nil {
			return Scope{}, err
		}
		advisors := make(map[string]struct{}, len(members)+1)
		advisors[identity.Subject] = struct{}{}
		for _, member := range members {
			if member != "" {
				advisors[member] = struct{}{}
			}
		}
		return Scope{Advisors: advisors}, nil
	default:
		return Scope{Advisors: map[string]struct{}{}}, nil
	}
}
