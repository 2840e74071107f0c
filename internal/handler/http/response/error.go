package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/qrtoken"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. State conflicts keep
// their machine-readable codes so clients can react per transition.
func HandleError(w http.ResponseWriter, err error) {
	// Validation errors carry a per-field detail map
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence violations include the computed distance for client display
	var geofenceErr *attendance.GeofenceError
	if errors.As(err, &geofenceErr) {
		Error(w, http.StatusBadRequest, "GEOFENCE_VIOLATION", geofenceErr.Error(), map[string]string{
			"distance_meters": strconv.FormatFloat(geofenceErr.DistanceMeters, 'f', 1, 64),
			"radius_meters":   strconv.FormatFloat(geofenceErr.RadiusMeters, 'f', 0, 64),
		})
		return
	}

	// QR token rejections distinguish expired / invalid_format / wrong_business
	var tokenErr *qrtoken.InvalidTokenError
	if errors.As(err, &tokenErr) {
		Error(w, http.StatusBadRequest, "TOKEN_INVALID", tokenErr.Error(), map[string]string{
			"reason": string(tokenErr.Reason),
		})
		return
	}

	switch {
	// Attendance state conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "ALREADY_CHECKED_IN", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "ALREADY_CHECKED_OUT", err.Error())
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "ALREADY_ON_BREAK", err.Error())
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		Conflict(w, "NO_ACTIVE_CHECK_IN", err.Error())
	case errors.Is(err, attendance.ErrNoActiveBreak):
		Conflict(w, "NO_ACTIVE_BREAK", err.Error())
	case errors.Is(err, attendance.ErrCancellationTimeExpired):
		Conflict(w, "CANCELLATION_TIME_EXPIRED", err.Error())

	// Missing records; foreign ownership is reported identically
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrBreakNotFound):
		NotFound(w, "Break interval not found")
	case errors.Is(err, business.ErrBusinessNotFound):
		NotFound(w, "Business not found")

	// Authorization
	case errors.Is(err, user.ErrInsufficientRole):
		Forbidden(w, "INSUFFICIENT_ROLE", "Insufficient role for this operation")

	// Default: persistence and other unexpected failures
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
