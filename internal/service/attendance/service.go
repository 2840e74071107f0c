package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/config"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/geo"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/qrtoken"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/service/access"
	"github.com/google/uuid"
)

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	businessRepo   business.Repository
	locker         attendance.RecordLocker
	tokens         *qrtoken.Codec
	gate           access.Gate

	cancellationWindow  time.Duration
	defaultRadiusMeters float64

	now func() time.Time
}

func NewService(
	attendanceRepo attendance.Repository,
	businessRepo business.Repository,
	locker attendance.RecordLocker,
	tokens *qrtoken.Codec,
	gate access.Gate,
	cfg config.AttendanceConfig,
) attendance.Service {
	return &ServiceImpl{
		attendanceRepo:      attendanceRepo,
		businessRepo:        businessRepo,
		locker:              locker,
		tokens:              tokens,
		gate:                gate,
		cancellationWindow:  cfg.CancellationWindow,
		defaultRadiusMeters: cfg.DefaultRadiusMeters,
		now:                 time.Now,
	}
}

// timeString formats an absolute timestamp for responses.
func timeString(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timeString(*t)
	return &s
}

func (s *ServiceImpl) radiusFor(biz business.Business) float64 {
	if biz.RadiusMeters > 0 {
		return biz.RadiusMeters
	}
	return s.defaultRadiusMeters
}

// verifyProof runs the method-specific check-in verification. Pure and
// stateless, so it runs before the record lock is taken.
func (s *ServiceImpl) verifyProof(req attendance.CheckInRequest, biz business.Business, now time.Time) error {
	switch req.Method {
	case attendance.MethodGPS:
		radius := s.radiusFor(biz)
		v, err := geo.Verify(
			geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude},
			geo.Point{Latitude: biz.Latitude, Longitude: biz.Longitude},
			radius,
		)
		if err != nil {
			return err
		}
		if !v.WithinRadius {
			return &attendance.GeofenceError{DistanceMeters: v.DistanceMeters, RadiusMeters: radius}
		}
		return nil
	case attendance.MethodQR:
		return s.tokens.Validate(req.QRToken, biz.ID, now)
	default:
		return fmt.Errorf("unsupported check-in method %q", req.Method)
	}
}

// CheckIn implements attendance.Service.
func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	biz, err := s.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	now := s.now().UTC()
	if err := s.verifyProof(req, biz, now); err != nil {
		return attendance.CheckInResponse{}, err
	}

	workDate := biz.WorkDate(now)
	key := attendance.RecordKey{UserID: req.UserID, BusinessID: req.BusinessID, WorkDate: workDate}

	var created attendance.Attendance
	err = s.locker.WithRecordLock(ctx, key, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, req.BusinessID, workDate)
		if err != nil {
			return fmt.Errorf("failed to check existing attendance: %w", err)
		}
		if existing != nil {
			if existing.Status == attendance.StatusCheckedOut {
				return attendance.ErrAlreadyCheckedOut
			}
			return attendance.ErrAlreadyCheckedIn
		}

		record := attendance.Attendance{
			ID:         uuid.NewString(),
			UserID:     req.UserID,
			BusinessID: req.BusinessID,
			WorkDate:   workDate,

			CheckInTime:   now,
			CheckInMethod: req.Method,
			Status:        attendance.StatusCheckedIn,
		}
		if req.Method == attendance.MethodGPS {
			record.CheckInLatitude = req.Latitude
			record.CheckInLongitude = req.Longitude
		}

		created, err = s.attendanceRepo.Create(ctx, record)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		AttendanceID: created.ID,
		BusinessID:   created.BusinessID,
		WorkDate:     created.WorkDate,
		CheckInTime:  timeString(created.CheckInTime),
		Method:       created.CheckInMethod,
		Status:       created.Status,
	}, nil
}

// CheckOut implements attendance.Service.
func (s *ServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	open, err := s.attendanceRepo.GetOpenByUserAndBusiness(ctx, req.UserID, req.BusinessID)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to find open attendance: %w", err)
	}
	if open == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNoActiveCheckIn
	}

	key := attendance.RecordKey{UserID: req.UserID, BusinessID: req.BusinessID, WorkDate: open.WorkDate}

	var resp attendance.CheckOutResponse
	err = s.locker.WithRecordLock(ctx, key, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, req.BusinessID, open.WorkDate)
		if err != nil {
			return fmt.Errorf("failed to reload attendance: %w", err)
		}
		if record == nil {
			// Cancelled between lookup and lock.
			return attendance.ErrNoActiveCheckIn
		}
		if record.Status == attendance.StatusCheckedOut {
			return attendance.ErrAlreadyCheckedOut
		}

		now := s.now().UTC()

		// An open break is implicitly closed at checkout time.
		if br := record.CloseOpenBreak(now); br != nil {
			if err := s.attendanceRepo.CloseBreak(ctx, br.ID, now); err != nil {
				return fmt.Errorf("failed to close open break: %w", err)
			}
		}

		duration, err := record.WorkDurationAt(now)
		if err != nil {
			return err
		}

		record.CheckOutTime = &now
		record.CheckOutLatitude = req.Latitude
		record.CheckOutLongitude = req.Longitude
		record.Status = attendance.StatusCheckedOut

		if err := s.attendanceRepo.Update(ctx, *record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		resp = attendance.CheckOutResponse{
			AttendanceID: record.ID,
			CheckOutTime: timeString(now),
			Status:       record.Status,
			WorkDuration: duration,
		}
		return nil
	})
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	return resp, nil
}

// StartBreak implements attendance.Service.
func (s *ServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.StartBreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.StartBreakResponse{}, err
	}

	breakType := req.Type
	if breakType == "" {
		breakType = attendance.BreakTypeNormal
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID, req.UserID)
	if err != nil {
		return attendance.StartBreakResponse{}, err
	}

	key := attendance.RecordKey{UserID: record.UserID, BusinessID: record.BusinessID, WorkDate: record.WorkDate}

	var resp attendance.StartBreakResponse
	err = s.locker.WithRecordLock(ctx, key, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID, req.UserID)
		if err != nil {
			return err
		}

		switch record.Status {
		case attendance.StatusOnBreak:
			return attendance.ErrAlreadyOnBreak
		case attendance.StatusCheckedOut:
			return attendance.ErrNoActiveCheckIn
		}

		now := s.now().UTC()
		br := attendance.BreakInterval{
			ID:           uuid.NewString(),
			AttendanceID: record.ID,
			StartTime:    now,
			Type:         breakType,
		}
		created, err := s.attendanceRepo.CreateBreak(ctx, br)
		if err != nil {
			return fmt.Errorf("failed to create break: %w", err)
		}

		record.Status = attendance.StatusOnBreak
		if err := s.attendanceRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance status: %w", err)
		}

		resp = attendance.StartBreakResponse{
			BreakID:   created.ID,
			StartTime: timeString(created.StartTime),
			Type:      created.Type,
			Status:    attendance.StatusOnBreak,
		}
		return nil
	})
	if err != nil {
		return attendance.StartBreakResponse{}, err
	}

	return resp, nil
}

// EndBreak implements attendance.Service.
func (s *ServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.EndBreakResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID, req.UserID)
	if err != nil {
		return attendance.EndBreakResponse{}, err
	}

	key := attendance.RecordKey{UserID: record.UserID, BusinessID: record.BusinessID, WorkDate: record.WorkDate}

	var resp attendance.EndBreakResponse
	err = s.locker.WithRecordLock(ctx, key, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID, req.UserID)
		if err != nil {
			return err
		}

		if record.Status != attendance.StatusOnBreak {
			return attendance.ErrNoActiveBreak
		}

		br := record.FindBreak(req.BreakID)
		if br == nil {
			return attendance.ErrBreakNotFound
		}
		if br.EndTime != nil {
			return attendance.ErrNoActiveBreak
		}

		now := s.now().UTC()
		if err := s.attendanceRepo.CloseBreak(ctx, br.ID, now); err != nil {
			return fmt.Errorf("failed to close break: %w", err)
		}

		record.Status = attendance.StatusCheckedIn
		if err := s.attendanceRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance status: %w", err)
		}

		minutes := int(now.Sub(br.StartTime).Minutes())
		if minutes < 0 {
			minutes = 0
		}

		resp = attendance.EndBreakResponse{
			BreakID:         br.ID,
			EndTime:         timeString(now),
			DurationMinutes: minutes,
			Status:          attendance.StatusCheckedIn,
		}
		return nil
	})
	if err != nil {
		return attendance.EndBreakResponse{}, err
	}

	return resp, nil
}

// CancelCheckIn implements attendance.Service. The record and its breaks
// are genuinely deleted so a cancelled check-in never counts toward
// history; only the audit entry remains.
func (s *ServiceImpl) CancelCheckIn(ctx context.Context, req attendance.CancelCheckInRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID, req.UserID)
	if err != nil {
		return err
	}

	key := attendance.RecordKey{UserID: record.UserID, BusinessID: record.BusinessID, WorkDate: record.WorkDate}

	return s.locker.WithRecordLock(ctx, key, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID, req.UserID)
		if err != nil {
			return err
		}

		if record.Status == attendance.StatusCheckedOut {
			return attendance.ErrAlreadyCheckedOut
		}

		now := s.now().UTC()
		if now.Sub(record.CheckInTime) > s.cancellationWindow {
			return attendance.ErrCancellationTimeExpired
		}

		if err := s.attendanceRepo.Delete(ctx, record.ID); err != nil {
			return fmt.Errorf("failed to delete attendance: %w", err)
		}

		entry := attendance.AuditEntry{
			ID:           uuid.NewString(),
			Action:       attendance.AuditActionCheckInCancelled,
			AttendanceID: record.ID,
			UserID:       record.UserID,
			BusinessID:   record.BusinessID,
			Reason:       req.Reason,
			CreatedAt:    now,
		}
		if err := s.attendanceRepo.AppendAudit(ctx, entry); err != nil {
			return fmt.Errorf("failed to append audit entry: %w", err)
		}

		return nil
	})
}

func mapBreaks(breaks []attendance.BreakInterval) []attendance.BreakResponse {
	if len(breaks) == 0 {
		return nil
	}
	out := make([]attendance.BreakResponse, 0, len(breaks))
	for _, br := range breaks {
		out = append(out, attendance.BreakResponse{
			BreakID:   br.ID,
			StartTime: timeString(br.StartTime),
			EndTime:   timePtrToString(br.EndTime),
			Type:      br.Type,
		})
	}
	return out
}

// GetStatus implements attendance.Service.
func (s *ServiceImpl) GetStatus(ctx context.Context, req attendance.StatusRequest) (attendance.StatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.StatusResponse{}, err
	}

	target := req.TargetUserID
	if target == "" {
		target = req.RequesterID
	}
	if target != req.RequesterID {
		if err := s.gate.AuthorizeUserAccess(ctx, req.RequesterID, target, req.BusinessID); err != nil {
			return attendance.StatusResponse{}, err
		}
	}

	biz, err := s.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	workDate := req.Date
	if workDate == "" {
		workDate = biz.WorkDate(s.now().UTC())
	}

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, target, req.BusinessID, workDate)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record == nil {
		return attendance.StatusResponse{
			Status:   attendance.StatusNotCheckedIn,
			WorkDate: workDate,
		}, nil
	}

	resp := attendance.StatusResponse{
		Status:       record.Status,
		AttendanceID: &record.ID,
		WorkDate:     record.WorkDate,
		CheckInTime:  timePtrToString(&record.CheckInTime),
		CheckOutTime: timePtrToString(record.CheckOutTime),
		Breaks:       mapBreaks(record.Breaks),
	}

	if record.Status == attendance.StatusCheckedOut && record.CheckOutTime != nil {
		duration, err := record.WorkDurationAt(*record.CheckOutTime)
		if err != nil {
			return attendance.StatusResponse{}, fmt.Errorf("failed to derive work duration: %w", err)
		}
		resp.WorkDuration = &duration
	}

	return resp, nil
}

// GetMyAttendance implements attendance.Service.
func (s *ServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := s.attendanceRepo.ListByUser(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		resp := attendance.AttendanceResponse{
			ID:           record.ID,
			UserID:       record.UserID,
			BusinessID:   record.BusinessID,
			WorkDate:     record.WorkDate,
			CheckInTime:  timeString(record.CheckInTime),
			CheckOutTime: timePtrToString(record.CheckOutTime),
			Method:       record.CheckInMethod,
			Status:       record.Status,
			Breaks:       mapBreaks(record.Breaks),
		}
		if record.Status == attendance.StatusCheckedOut && record.CheckOutTime != nil {
			if duration, err := record.WorkDurationAt(*record.CheckOutTime); err == nil {
				resp.WorkDuration = &duration
			}
		}
		responses = append(responses, resp)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// ValidateEligibility implements attendance.Service.
func (s *ServiceImpl) ValidateEligibility(ctx context.Context, req attendance.EligibilityRequest) (attendance.EligibilityResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EligibilityResponse{}, err
	}

	biz, err := s.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		return attendance.EligibilityResponse{}, err
	}

	now := s.now().UTC()
	workDate := biz.WorkDate(now)

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, req.BusinessID, workDate)
	if err != nil {
		return attendance.EligibilityResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if record != nil {
		reason := "already_checked_in"
		if record.Status == attendance.StatusCheckedOut {
			reason = "already_checked_out"
		}
		return attendance.EligibilityResponse{
			CanCheckIn:    false,
			Reason:        &reason,
			CurrentStatus: record.Status,
		}, nil
	}

	resp := attendance.EligibilityResponse{
		CanCheckIn:    true,
		CurrentStatus: attendance.StatusNotCheckedIn,
	}

	if req.Latitude != nil && req.Longitude != nil {
		radius := s.radiusFor(biz)
		v, err := geo.Verify(
			geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude},
			geo.Point{Latitude: biz.Latitude, Longitude: biz.Longitude},
			radius,
		)
		if err != nil {
			return attendance.EligibilityResponse{}, err
		}
		resp.DistanceMeters = &v.DistanceMeters
		if !v.WithinRadius {
			reason := "outside_geofence"
			resp.CanCheckIn = false
			resp.Reason = &reason
		}
	}

	return resp, nil
}
