package policy

import (
	"fmt"

	"transport-office/constants"
)

// Verdict is the outcome of checking a role against a permission.
type Verdict struct {
	Allowed bool
	Reason  string
}

var roleRank = map[string]int{
	constants.RoleOperator:   1,
	constants.RoleAdmin:      2,
	constants.RoleSuperAdmin: 3,
}

// Evaluate decides whether a role may exercise a permission. Unknown roles
// and unknown permissions are denied so a stale token can never widen access.
func Evaluate(role, permission string) Verdict {
	rank, knownRole := roleRank[role]
	if !knownRole {
		return Verdict{Reason: fmt.Sprintf("unknown role %q", role)}
	}

	if permission == constants.PermAny {
		return Verdict{Allowed: true}
	}

	minimumRole, knownPermission := constants.PermissionMinimumRole[permission]
	if !knownPermission {
		return Verdict{Reason: fmt.Sprintf("unknown permission %q", permission)}
	}

	if rank < roleRank[minimumRole] {
		return Verdict{Reason: fmt.Sprintf("%s requires at least %s", permission, minimumRole)}
	}

	return Verdict{Allowed: true}
}

// Any reports whether the role may exercise at least one of the permissions.
// The returned verdict is the first allowing one, or the last denial.
func Any(role string, permissions ...string) Verdict {
	verdict := Verdict{Reason: "no permissions requested"}
	for _, permission := range permissions {
		verdict = Evaluate(role, permission)
		if verdict.Allowed {
			return verdict
		}
	}
	return verdict
}
