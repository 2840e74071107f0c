package attendance

import (
	"context"
)

// Service defines the attendance state machine operations. All transitions
// on one (user, business, work date) record are serialized through the
// repository's record lock.
type Service interface {
	// CheckIn verifies the proof (gps geofence or qr token) and atomically
	// creates the day's record.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes the open record, auto-closing an open break, and
	// returns the work duration summary.
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// StartBreak opens a break interval on a checked-in record.
	StartBreak(ctx context.Context, req StartBreakRequest) (StartBreakResponse, error)

	// EndBreak closes the open break and returns its duration in minutes.
	EndBreak(ctx context.Context, req EndBreakRequest) (EndBreakResponse, error)

	// CancelCheckIn voids a check-in within the grace window. The record and
	// its breaks are deleted and an audit entry is appended.
	CancelCheckIn(ctx context.Context, req CancelCheckInRequest) error

	// GetStatus reports the current (or historical) day state. Delegated
	// access to another user's status requires a manager or owner role.
	GetStatus(ctx context.Context, req StatusRequest) (StatusResponse, error)

	// GetMyAttendance retrieves attendance history for the requesting user.
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ValidateEligibility reports whether a check-in would currently succeed,
	// without mutating anything.
	ValidateEligibility(ctx context.Context, req EligibilityRequest) (EligibilityResponse, error)
}
