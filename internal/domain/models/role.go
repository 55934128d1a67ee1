package models

import (
	"fmt"
	"strings"
)

// Role is a workspace membership role. Canonical form is lower-case.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleReviewer Role = "reviewer"
	RoleViewer   Role = "viewer"
)

// Roles lists every workspace role from most to least privileged.
var Roles = []Role{RoleOwner, RoleAdmin, RoleEditor, RoleReviewer, RoleViewer}

// NormalizeRole trims and lower-cases a stored or requested role string.
// It does not check that the result is a known role.
func NormalizeRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// ParseRole normalizes s and rejects unknown roles.
func ParseRole(s string) (Role, error) {
	r := NormalizeRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// Rank orders roles by privilege: owner is highest, unknown roles are 0.
func (r Role) Rank() int {
	switch NormalizeRole(string(r)) {
	case RoleOwner:
		return 5
	case RoleAdmin:
		return 4
	case RoleEditor:
		return 3
	case RoleReviewer:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r is as privileged as other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.Rank() >= other.Rank()
}

// TeamRoleOwner and TeamRoleMember are the team membership roles.
const (
	TeamRoleOwner  = "owner"
	TeamRoleMember = "member"
)
