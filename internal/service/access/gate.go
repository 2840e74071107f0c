// Package access centralizes authorization decisions: self-access for
// mutating operations, delegated access for managers and owners scoped to
// a business.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
)

type Gate interface {
	// AuthorizeUserAccess allows a requester to act on targetUserID's data:
	// always for self, otherwise only with a manager or owner membership in
	// the business. Returns user.ErrInsufficientRole when denied.
	AuthorizeUserAccess(ctx context.Context, requesterID, targetUserID, businessID string) error

	// RequireManager allows only members with a manager or owner role.
	RequireManager(ctx context.Context, requesterID, businessID string) error
}

type gateImpl struct {
	businessRepo business.Repository
}

func NewGate(businessRepo business.Repository) Gate {
	return &gateImpl{businessRepo: businessRepo}
}

// AuthorizeUserAccess implements Gate.
func (g *gateImpl) AuthorizeUserAccess(ctx context.Context, requesterID, targetUserID, businessID string) error {
	if requesterID == targetUserID {
		return nil
	}
	return g.RequireManager(ctx, requesterID, businessID)
}

// RequireManager implements Gate.
func (g *gateImpl) RequireManager(ctx context.Context, requesterID, businessID string) error {
	role, err := g.businessRepo.GetMemberRole(ctx, requesterID, businessID)
	if err != nil {
		if errors.Is(err, business.ErrNotAMember) {
			return user.ErrInsufficientRole
		}
		return fmt.Errorf("failed to get member role: %w", err)
	}

	if !role.CanManageBusiness() {
		return user.ErrInsufficientRole
	}

	return nil
}
