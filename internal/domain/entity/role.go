// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the marketplace.
// The token set is closed and canonical: every call site compares against
// these constants, never against ad hoc strings.
type Role string

const (
	// RoleConsumer indicates a consumer who browses stores and places orders.
	RoleConsumer Role = "CONSUMER"
	// RoleMerchant indicates a merchant who owns stores and products.
	RoleMerchant Role = "MERCHANT"
	// RoleDelivery indicates delivery personnel who accept and fulfil orders.
	RoleDelivery Role = "DELIVERY"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleConsumer, RoleMerchant, RoleDelivery:
		return true
	default:
		return false
	}
}
