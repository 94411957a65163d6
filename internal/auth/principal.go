// Package auth issues and validates operator tokens and models their roles.
package auth

import "strings"

// Role is the permission level of an operator.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole normalizes a role name. The second result is false for unknown roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   Role
}

// CanEdit reports whether the principal may create bookings and edit records.
func (p Principal) CanEdit() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

// CanSettle reports whether the principal may settle a booking.
func (p Principal) CanSettle() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperAdmin
}

// CanForceSettle reports whether the principal may re-settle an already settled booking.
func (p Principal) CanForceSettle() bool {
	return p.Role == RoleSuperAdmin
}
