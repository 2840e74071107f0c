package business

import (
	"time"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
)

// Business holds the geofence anchor and the timezone that defines its
// calendar work date.
type Business struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Timezone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Location resolves the business timezone, falling back to UTC when the
// stored name is invalid.
func (b *Business) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WorkDate formats t as the business-local calendar day.
func (b *Business) WorkDate(t time.Time) string {
	return t.In(b.Location()).Format("2006-01-02")
}

// Member is one user's membership in a business.
type Member struct {
	UserID string
	Name   string
	Role   user.Role
}
