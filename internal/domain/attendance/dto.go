package attendance

import (
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	UserID     string   `json:"-"`
	BusinessID string   `json:"business_id"`
	Method     Method   `json:"method"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	QRToken    string   `json:"qr_token,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BusinessID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_id",
			Message: "business_id is required",
		})
	}

	switch r.Method {
	case MethodGPS:
		if r.Latitude == nil || r.Longitude == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "location",
				Message: "latitude and longitude are required for gps check-in",
			})
			break
		}
		if !validator.IsValidLatitude(*r.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude must be a number between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(*r.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "longitude",
				Message: "longitude must be a number between -180 and 180",
			})
		}
	case MethodQR:
		if validator.IsEmpty(r.QRToken) {
			errs = append(errs, validator.ValidationError{
				Field:   "qr_token",
				Message: "qr_token is required for qr check-in",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of: gps, qr",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckInResponse struct {
	AttendanceID string `json:"attendance_id"`
	BusinessID   string `json:"business_id"`
	WorkDate     string `json:"work_date"`
	CheckInTime  string `json:"check_in_time"`
	Method       Method `json:"method"`
	Status       Status `json:"status"`
}

type CheckOutRequest struct {
	UserID     string   `json:"-"`
	BusinessID string   `json:"business_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BusinessID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_id",
			Message: "business_id is required",
		})
	}

	// Checkout location is optional; when supplied it must be a valid point.
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a number between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
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

type CheckOutResponse struct {
	AttendanceID string       `json:"attendance_id"`
	CheckOutTime string       `json:"check_out_time"`
	Status       Status       `json:"status"`
	WorkDuration WorkDuration `json:"work_duration"`
}

type StartBreakRequest struct {
	UserID       string    `json:"-"`
	AttendanceID string    `json:"-"`
	Type         BreakType `json:"type,omitempty"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if r.Type != "" && r.Type != BreakTypeNormal && r.Type != BreakTypeMeal {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: normal, meal",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StartBreakResponse struct {
	BreakID   string    `json:"break_id"`
	StartTime string    `json:"start_time"`
	Type      BreakType `json:"type"`
	Status    Status    `json:"status"`
}

type EndBreakRequest struct {
	UserID       string `json:"-"`
	AttendanceID string `json:"-"`
	BreakID      string `json:"-"`
}

type EndBreakResponse struct {
	BreakID         string `json:"break_id"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          Status `json:"status"`
}

type CancelCheckInRequest struct {
	UserID       string `json:"-"`
	AttendanceID string `json:"-"`
	Reason       string `json:"reason"`
}

func (r *CancelCheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StatusRequest struct {
	RequesterID  string `json:"-"`
	TargetUserID string `json:"-"`
	BusinessID   string `json:"-"`
	Date         string `json:"-"`
}

func (r *StatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BusinessID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_id",
			Message: "business_id is required",
		})
	}

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakResponse struct {
	BreakID   string    `json:"break_id"`
	StartTime string    `json:"start_time"`
	EndTime   *string   `json:"end_time,omitempty"`
	Type      BreakType `json:"type"`
}

type StatusResponse struct {
	Status       Status          `json:"status"`
	AttendanceID *string         `json:"attendance_id,omitempty"`
	WorkDate     string          `json:"work_date"`
	CheckInTime  *string         `json:"check_in_time,omitempty"`
	CheckOutTime *string         `json:"check_out_time,omitempty"`
	Breaks       []BreakResponse `json:"breaks,omitempty"`
	WorkDuration *WorkDuration   `json:"work_duration,omitempty"`
}

type EligibilityRequest struct {
	UserID     string   `json:"-"`
	BusinessID string   `json:"-"`
	Latitude   *float64 `json:"-"`
	Longitude  *float64 `json:"-"`
}

func (r *EligibilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BusinessID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_id",
			Message: "business_id is required",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a number between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
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

type EligibilityResponse struct {
	CanCheckIn     bool     `json:"can_check_in"`
	Reason         *string  `json:"reason,omitempty"`
	CurrentStatus  Status   `json:"current_status"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

type MyAttendanceFilter struct {
	UserID     string  `json:"-"`
	BusinessID string  `json:"-"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.BusinessID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_id",
			Message: "business_id is required",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	BusinessID   string          `json:"business_id"`
	WorkDate     string          `json:"work_date"`
	CheckInTime  string          `json:"check_in_time"`
	CheckOutTime *string         `json:"check_out_time,omitempty"`
	Method       Method          `json:"method"`
	Status       Status          `json:"status"`
	Breaks       []BreakResponse `json:"breaks,omitempty"`
	WorkDuration *WorkDuration   `json:"work_duration,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
