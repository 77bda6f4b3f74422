// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access to the review dashboards and application decisions
	RoleAdmin UserRole = "admin"

	// Default role for every registered member of the public
	RoleCitizen UserRole = "citizen"
)

// IsValid reports whether r is one of the two enumerated roles.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCitizen
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles (e.g. department officers)
	switch r {
	case RoleAdmin:
		return 40
	case RoleCitizen:
		return 10
	default:
		return 0
	}
}
