package business

import (
	"context"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
)

// Repository defines data access for businesses and their memberships.
type Repository interface {
	// GetByID retrieves a business by ID. Returns ErrBusinessNotFound.
	GetByID(ctx context.Context, id string) (Business, error)

	// GetMemberRole returns the role of userID within businessID.
	// Returns ErrNotAMember when there is no membership.
	GetMemberRole(ctx context.Context, userID, businessID string) (user.Role, error)

	// ListMembers retrieves all members of a business.
	ListMembers(ctx context.Context, businessID string) ([]Member, error)
}
