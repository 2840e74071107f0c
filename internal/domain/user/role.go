package user

import "errors"

// Role is the membership role of a user within a business. Roles are scoped
// per business and supplied by the identity subsystem.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleOwner    Role = "owner"
)

// CanManageBusiness reports whether the role grants delegated access to
// other members' attendance data and QR token issuance.
func (r Role) CanManageBusiness() bool {
	return r == RoleManager || r == RoleOwner
}

var (
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
