package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// State conflicts
	ErrAlreadyCheckedIn        = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut       = errors.New("you have already checked out today")
	ErrAlreadyOnBreak          = errors.New("a break is already in progress")
	ErrNoActiveCheckIn         = errors.New("you have not checked in yet")
	ErrNoActiveBreak           = errors.New("no break is in progress")
	ErrCancellationTimeExpired = errors.New("cancellation window has expired")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrBreakNotFound      = errors.New("break interval not found")

	// ErrNegativeWorkDuration indicates a data-integrity fault: break time
	// exceeded total time. Never clamped silently.
	ErrNegativeWorkDuration = errors.New("work duration accounting is negative")
)

// GeofenceError is returned when a GPS check-in falls outside the business
// radius. Carries the computed distance for client display.
type GeofenceError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("you are outside the allowed radius: %.1fm away, limit %.0fm",
		e.DistanceMeters, e.RadiusMeters)
}
