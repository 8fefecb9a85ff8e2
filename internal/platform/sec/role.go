// Copyright (c) 2026 SafeCampus. All rights reserved.

package sec

// # Campus Roles

// Role represents the authorization level granted to a campus identity.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Campus security officers; first responders for SOS activations
	RoleSecurity Role = "security"

	// Administrative and operations staff
	RoleStaff Role = "staff"

	// Teaching faculty
	RoleFaculty Role = "faculty"

	// Default role for enrolled students
	RoleStudent Role = "student"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
//
// The hierarchy is a total order: student < faculty < staff < security < admin.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// IsValid reports whether the role is one of the known campus roles.
func (r Role) IsValid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-50) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 50
	case RoleSecurity:
		return 40
	case RoleStaff:
		return 30
	case RoleFaculty:
		return 20
	case RoleStudent:
		return 10
	default:
		return 0
	}
}

// CanBroadcast reports whether the role may send campus-wide alerts.
//
// Deliberately NOT a hierarchy check: only operational responders (security
// and staff) broadcast. Admin accounts manage the system but are not part of
// the emergency response chain.
func (r Role) CanBroadcast() bool {
	return r == RoleSecurity || r == RoleStaff
}

// RoleNames returns the set of assignable role identifiers, lowest privilege first.
func RoleNames() []string {
	return []string{
		string(RoleStudent),
		string(RoleFaculty),
		string(RoleStaff),
		string(RoleSecurity),
		string(RoleAdmin),
	}
}
