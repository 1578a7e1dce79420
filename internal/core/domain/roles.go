package domain

// Role is the closed set of account roles. A user's role selects which
// profile table owns their personal data.
type Role string

const (
	RoleMember             Role = "member"
	RoleSuperAdmin         Role = "super_admin"
	RoleTreasurer          Role = "treasurer"
	RoleScreeningCommittee Role = "screening_committee"
)

// AllRoles lists every valid role
var AllRoles = []Role{
	RoleMember,
	RoleSuperAdmin,
	RoleTreasurer,
	RoleScreeningCommittee,
}

// StaffRoles lists the elevated roles (everything except member)
var StaffRoles = []Role{
	RoleSuperAdmin,
	RoleTreasurer,
	RoleScreeningCommittee,
}

// Valid reports whether r is one of the four known roles
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleSuperAdmin, RoleTreasurer, RoleScreeningCommittee:
		return true
	}
	return false
}

// IsStaff reports whether r is an elevated role (stored in staff_profiles)
func (r Role) IsStaff() bool {
	return r.Valid() && r != RoleMember
}

// ParseRole converts a raw string to a Role, second return false if unknown
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
