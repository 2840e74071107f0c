package geo

import (
	"math"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/validator"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000

type Point struct {
	Latitude  float64
	Longitude float64
}

// Verification is the result of a geofence check.
type Verification struct {
	WithinRadius   bool
	DistanceMeters float64
}

// ValidatePoint rejects non-finite coordinates and out-of-range values
// before any distance computation.
func ValidatePoint(p Point) error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(p.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a number between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(p.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a number between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HaversineDistance computes the great-circle distance between two points
// in meters.
func HaversineDistance(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Verify checks a reported point against an anchor and radius. Pure: no
// side effects, deterministic, safe under arbitrary concurrency.
func Verify(reported, anchor Point, radiusMeters float64) (Verification, error) {
	if err := ValidatePoint(reported); err != nil {
		return Verification{}, err
	}
	if err := ValidatePoint(anchor); err != nil {
		return Verification{}, err
	}

	distance := HaversineDistance(reported, anchor)
	return Verification{
		WithinRadius:   distance <= radiusMeters,
		DistanceMeters: distance,
	}, nil
}
