package geo

import (
	"math"
	"testing"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gangnamOffice = Point{Latitude: 37.4979, Longitude: 127.0276}

func TestHaversineDistanceZero(t *testing.T) {
	d := HaversineDistance(gangnamOffice, gangnamOffice)
	assert.Equal(t, 0.0, d)
}

func TestHaversineDistanceKnownPoints(t *testing.T) {
	cases := []struct {
		name string
		a, b Point
		want float64
	}{
		{
			name: "across the block",
			a:    gangnamOffice,
			b:    Point{Latitude: 37.5000, Longitude: 127.0300},
			want: 315.2038,
		},
		{
			name: "forty meters east",
			a:    gangnamOffice,
			b:    Point{Latitude: 37.4979, Longitude: 127.0276 + 0.00045342},
			want: 40.0004,
		},
		{
			name: "equator longitude step",
			a:    Point{Latitude: 0, Longitude: 0},
			b:    Point{Latitude: 0, Longitude: 0.001},
			want: 111.1949,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, HaversineDistance(c.a, c.b), 0.001)
		})
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	b := Point{Latitude: 37.5000, Longitude: 127.0300}
	assert.Equal(t, HaversineDistance(gangnamOffice, b), HaversineDistance(b, gangnamOffice))
}

func TestVerifyWithinRadius(t *testing.T) {
	reported := Point{Latitude: 37.4979, Longitude: 127.0276 + 0.00045342}

	v, err := Verify(reported, gangnamOffice, 50)
	require.NoError(t, err)
	assert.True(t, v.WithinRadius)
	assert.InDelta(t, 40.0, v.DistanceMeters, 0.01)
}

func TestVerifyOutsideRadius(t *testing.T) {
	reported := Point{Latitude: 37.5000, Longitude: 127.0300}

	v, err := Verify(reported, gangnamOffice, 50)
	require.NoError(t, err)
	assert.False(t, v.WithinRadius)
	assert.InDelta(t, 315.2038, v.DistanceMeters, 0.001)
}

func TestVerifyBoundaryIsInside(t *testing.T) {
	reported := Point{Latitude: 37.5000, Longitude: 127.0300}
	distance := HaversineDistance(reported, gangnamOffice)

	// Exactly on the boundary counts as inside.
	v, err := Verify(reported, gangnamOffice, distance)
	require.NoError(t, err)
	assert.True(t, v.WithinRadius)
}

func TestVerifyRejectsInvalidCoordinates(t *testing.T) {
	cases := []struct {
		name  string
		point Point
		field string
	}{
		{"latitude above range", Point{Latitude: 90.0001, Longitude: 0}, "latitude"},
		{"latitude below range", Point{Latitude: -90.0001, Longitude: 0}, "latitude"},
		{"longitude above range", Point{Latitude: 0, Longitude: 180.0001}, "longitude"},
		{"longitude below range", Point{Latitude: 0, Longitude: -180.0001}, "longitude"},
		{"latitude NaN", Point{Latitude: math.NaN(), Longitude: 0}, "latitude"},
		{"longitude infinite", Point{Latitude: 0, Longitude: math.Inf(1)}, "longitude"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Verify(c.point, gangnamOffice, 50)
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}
}

func TestVerifyRejectsInvalidAnchor(t *testing.T) {
	_, err := Verify(gangnamOffice, Point{Latitude: math.NaN(), Longitude: 0}, 50)
	require.Error(t, err)
}

func TestPolesAndExtremes(t *testing.T) {
	v, err := Verify(Point{Latitude: 90, Longitude: 0}, Point{Latitude: 90, Longitude: 180}, 1)
	require.NoError(t, err)
	// Both points are the north pole regardless of longitude.
	assert.True(t, v.WithinRadius)
	assert.InDelta(t, 0, v.DistanceMeters, 0.001)
}
