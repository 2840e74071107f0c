package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type businessRepository struct {
	db *database.DB
}

func NewBusinessRepository(db *database.DB) business.Repository {
	return &businessRepository{db: db}
}

// GetByID implements business.Repository.
func (b *businessRepository) GetByID(ctx context.Context, id string) (business.Business, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, timezone, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`

	var biz business.Business
	err := q.QueryRow(ctx, query, id).Scan(
		&biz.ID, &biz.Name, &biz.Latitude, &biz.Longitude,
		&biz.RadiusMeters, &biz.Timezone, &biz.CreatedAt, &biz.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return business.Business{}, business.ErrBusinessNotFound
		}
		return business.Business{}, fmt.Errorf("failed to get business by ID: %w", err)
	}

	return biz, nil
}

// GetMemberRole implements business.Repository.
func (b *businessRepository) GetMemberRole(ctx context.Context, userID, businessID string) (user.Role, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT role
		FROM business_members
		WHERE user_id = $1 AND business_id = $2
	`

	var role user.Role
	err := q.QueryRow(ctx, query, userID, businessID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", business.ErrNotAMember
		}
		return "", fmt.Errorf("failed to get member role: %w", err)
	}

	return role, nil
}

// ListMembers implements business.Repository.
func (b *businessRepository) ListMembers(ctx context.Context, businessID string) ([]business.Member, error) {
	q := GetQuerier(ctx, b.db)

	rows, err := q.Query(ctx, `
		SELECT user_id, name, role
		FROM business_members
		WHERE business_id = $1
		ORDER BY name
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []business.Member
	for rows.Next() {
		var m business.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
