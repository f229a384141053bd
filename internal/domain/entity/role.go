// Package entity contains the core business objects of the project.
package entity

// Role represents the informational account role label. Any account ID can
// appear as a sellerId on products and orders regardless of its role.
type Role string

const (
	// RoleBuyer indicates an account registered to purchase spare parts.
	RoleBuyer Role = "buyer"
	// RoleSeller indicates an account registered to list spare parts.
	RoleSeller Role = "seller"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller:
		return true
	default:
		return false
	}
}
