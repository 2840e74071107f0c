package business

import (
	"context"
)

// Service defines manager-facing business operations.
type Service interface {
	// GetSummary aggregates per-status counts across all members of a
	// business for the current work date. Manager or owner only.
	GetSummary(ctx context.Context, requesterID, businessID string) (SummaryResponse, error)

	// IssueQRToken issues a short-lived signed check-in token for the
	// business. Manager or owner only.
	IssueQRToken(ctx context.Context, requesterID, businessID string) (QRTokenResponse, error)
}
