package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/handler/http/middleware"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// CheckIn handles POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = middleware.UserID(r)

	resp, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", resp)
}

// CheckOut handles POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = middleware.UserID(r)

	resp, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", resp)
}

// StartBreak handles POST /api/v1/attendance/{attendanceID}/breaks
func (h *AttendanceHandler) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.StartBreakRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	req.UserID = middleware.UserID(r)
	req.AttendanceID = chi.URLParam(r, "attendanceID")

	resp, err := h.attendanceService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break started", resp)
}

// EndBreak handles PUT /api/v1/attendance/{attendanceID}/breaks/{breakID}/end
func (h *AttendanceHandler) EndBreak(w http.ResponseWriter, r *http.Request) {
	req := attendance.EndBreakRequest{
		UserID:       middleware.UserID(r),
		AttendanceID: chi.URLParam(r, "attendanceID"),
		BreakID:      chi.URLParam(r, "breakID"),
	}

	resp, err := h.attendanceService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", resp)
}

// CancelCheckIn handles POST /api/v1/attendance/{attendanceID}/cancel
func (h *AttendanceHandler) CancelCheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CancelCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = middleware.UserID(r)
	req.AttendanceID = chi.URLParam(r, "attendanceID")

	if err := h.attendanceService.CancelCheckIn(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-in cancelled", nil)
}

// GetStatus handles GET /api/v1/attendance/status
//
// Query params: business_id (required), user_id (defaults to the requester;
// another user requires manager or owner role), date (YYYY-MM-DD, defaults
// to today).
func (h *AttendanceHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.UserID(r)

	targetUserID := r.URL.Query().Get("user_id")
	if targetUserID == "" {
		targetUserID = requesterID
	}

	req := attendance.StatusRequest{
		RequesterID:  requesterID,
		TargetUserID: targetUserID,
		BusinessID:   r.URL.Query().Get("business_id"),
		Date:         r.URL.Query().Get("date"),
	}

	resp, err := h.attendanceService.GetStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetMyAttendance handles GET /api/v1/attendance/my
func (h *AttendanceHandler) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MyAttendanceFilter{
		UserID:     middleware.UserID(r),
		BusinessID: r.URL.Query().Get("business_id"),
	}

	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			filter.Page = page
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}

	resp, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ValidateEligibility handles GET /api/v1/attendance/eligibility
//
// Query params: business_id (required), latitude, longitude (optional; when
// present the geofence is evaluated as part of the answer).
func (h *AttendanceHandler) ValidateEligibility(w http.ResponseWriter, r *http.Request) {
	req := attendance.EligibilityRequest{
		UserID:     middleware.UserID(r),
		BusinessID: r.URL.Query().Get("business_id"),
	}

	if v := r.URL.Query().Get("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(w, "latitude must be a number", nil)
			return
		}
		req.Latitude = &lat
	}
	if v := r.URL.Query().Get("longitude"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(w, "longitude must be a number", nil)
			return
		}
		req.Longitude = &lon
	}

	resp, err := h.attendanceService.ValidateEligibility(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
