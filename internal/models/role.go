package models

// Privilege roles. Role gates what a user may administer; it is distinct from
// the free-text FellowshipRole label shown on profiles.
const (
	RoleMember        = "MEMBER"
	RoleFamilyLeader  = "FAMILY_LEADER"
	RoleTeamLeader    = "TEAM_LEADER"
	RoleGeneralLeader = "GENERAL_LEADER"
	RoleSuperAdmin    = "SUPER_ADMIN"
)

// InviteRoles enumerates the roles an invite code may grant. Plain members
// register without a code, so MEMBER is deliberately absent.
var InviteRoles = []string{RoleFamilyLeader, RoleTeamLeader, RoleGeneralLeader, RoleSuperAdmin}

// IsInviteRole reports whether role can be assigned through an invite code.
func IsInviteRole(role string) bool {
	for _, candidate := range InviteRoles {
		if candidate == role {
			return true
		}
	}
	return false
}

// IsLeaderRole reports whether role carries leader privileges (any leader tier
// or super admin).
func IsLeaderRole(role string) bool {
	switch role {
	case RoleFamilyLeader, RoleTeamLeader, RoleGeneralLeader, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
