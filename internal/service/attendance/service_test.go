package attendance

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/config"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/business"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/user"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/qrtoken"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/repository/memory"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/service/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBusinessID = "biz-gangnam"
	testEmployeeID = "user-employee"
	testManagerID  = "user-manager"
	testOtherID    = "user-other"
	testQRSecret   = "test-qr-secret"
)

const (
	officeLat = 37.4979
	officeLon = 127.0276
)

var baseTime = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *ServiceImpl
	attRepo *memory.AttendanceRepository
	bizRepo *memory.BusinessRepository
	codec   *qrtoken.Codec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	attRepo := memory.NewAttendanceRepository()
	bizRepo := memory.NewBusinessRepository()
	bizRepo.Put(business.Business{
		ID:           testBusinessID,
		Name:         "Gangnam Branch",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: 50,
		Timezone:     "UTC",
	})
	bizRepo.PutMember(testBusinessID, business.Member{UserID: testEmployeeID, Name: "Employee", Role: user.RoleEmployee})
	bizRepo.PutMember(testBusinessID, business.Member{UserID: testManagerID, Name: "Manager", Role: user.RoleManager})
	bizRepo.PutMember(testBusinessID, business.Member{UserID: testOtherID, Name: "Other", Role: user.RoleEmployee})

	codec := qrtoken.New(testQRSecret, 30*time.Second)

	cfg := config.AttendanceConfig{
		QRTokenSecret:       testQRSecret,
		QRTokenTTL:          30 * time.Second,
		CancellationWindow:  5 * time.Minute,
		DefaultRadiusMeters: 50,
	}

	svc := NewService(attRepo, bizRepo, attRepo, codec, access.NewGate(bizRepo), cfg).(*ServiceImpl)
	svc.now = func() time.Time { return baseTime }

	return &fixture{svc: svc, attRepo: attRepo, bizRepo: bizRepo, codec: codec}
}

func (f *fixture) setNow(t time.Time) {
	f.svc.now = func() time.Time { return t }
}

func ptr(v float64) *float64 { return &v }

func gpsCheckIn(userID string) attendance.CheckInRequest {
	return attendance.CheckInRequest{
		UserID:     userID,
		BusinessID: testBusinessID,
		Method:     attendance.MethodGPS,
		Latitude:   ptr(officeLat),
		Longitude:  ptr(officeLon),
	}
}

func (f *fixture) checkIn(t *testing.T, userID string) attendance.CheckInResponse {
	t.Helper()
	resp, err := f.svc.CheckIn(context.Background(), gpsCheckIn(userID))
	require.NoError(t, err)
	return resp
}

// ---------------------------------------------------------------------------
// Check-in

func TestCheckInGPS(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CheckIn(context.Background(), gpsCheckIn(testEmployeeID))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AttendanceID)
	assert.Equal(t, testBusinessID, resp.BusinessID)
	assert.Equal(t, "2025-06-02", resp.WorkDate)
	assert.Equal(t, attendance.MethodGPS, resp.Method)
	assert.Equal(t, attendance.StatusCheckedIn, resp.Status)
	assert.Equal(t, "2025-06-02T09:00:00Z", resp.CheckInTime)
}

func TestCheckInGPSWithinDefaultRadius(t *testing.T) {
	f := newFixture(t)

	// About 40m east of the anchor, inside the 50m fence.
	req := gpsCheckIn(testEmployeeID)
	req.Longitude = ptr(officeLon + 0.00045342)

	_, err := f.svc.CheckIn(context.Background(), req)
	assert.NoError(t, err)
}

func TestCheckInGPSOutsideGeofence(t *testing.T) {
	f := newFixture(t)

	req := gpsCheckIn(testEmployeeID)
	req.Latitude = ptr(37.5000)
	req.Longitude = ptr(127.0300)

	_, err := f.svc.CheckIn(context.Background(), req)
	require.Error(t, err)

	var geofenceErr *attendance.GeofenceError
	require.ErrorAs(t, err, &geofenceErr)
	assert.InDelta(t, 315.2038, geofenceErr.DistanceMeters, 0.001)
	assert.Equal(t, 50.0, geofenceErr.RadiusMeters)
}

func TestCheckInQR(t *testing.T) {
	f := newFixture(t)

	token, err := f.codec.Issue(testBusinessID, baseTime.Add(-10*time.Second))
	require.NoError(t, err)

	resp, err := f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		Method:     attendance.MethodQR,
		QRToken:    token,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.MethodQR, resp.Method)
	assert.Equal(t, attendance.StatusCheckedIn, resp.Status)
}

func TestCheckInQRExpired(t *testing.T) {
	f := newFixture(t)

	token, err := f.codec.Issue(testBusinessID, baseTime.Add(-31*time.Second))
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		Method:     attendance.MethodQR,
		QRToken:    token,
	})
	require.Error(t, err)

	var tokenErr *qrtoken.InvalidTokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, qrtoken.ReasonExpired, tokenErr.Reason)
}

func TestCheckInQRWrongBusiness(t *testing.T) {
	f := newFixture(t)

	token, err := f.codec.Issue("biz-elsewhere", baseTime)
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		Method:     attendance.MethodQR,
		QRToken:    token,
	})
	require.Error(t, err)

	var tokenErr *qrtoken.InvalidTokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, qrtoken.ReasonWrongBusiness, tokenErr.Reason)
}

func TestCheckInTwice(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	_, err := f.svc.CheckIn(context.Background(), gpsCheckIn(testEmployeeID))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInAfterCheckout(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(8 * time.Hour))
	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), gpsCheckIn(testEmployeeID))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckInValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		Method:     attendance.MethodGPS,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "latitude and longitude are required")
}

func TestCheckInUnknownBusiness(t *testing.T) {
	f := newFixture(t)

	req := gpsCheckIn(testEmployeeID)
	req.BusinessID = "biz-missing"

	_, err := f.svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, business.ErrBusinessNotFound)
}

func TestConcurrentCheckInsOnlyOneWins(t *testing.T) {
	f := newFixture(t)

	var succeeded, conflicted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckIn(context.Background(), gpsCheckIn(testEmployeeID))
			switch {
			case err == nil:
				succeeded.Add(1)
			case err == attendance.ErrAlreadyCheckedIn:
				conflicted.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), succeeded.Load())
	assert.Equal(t, int64(19), conflicted.Load())
}

// ---------------------------------------------------------------------------
// Check-out

func TestCheckOut(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(9 * time.Hour))
	out, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	assert.Equal(t, resp.AttendanceID, out.AttendanceID)
	assert.Equal(t, attendance.StatusCheckedOut, out.Status)
	assert.Equal(t, 540, out.WorkDuration.TotalMinutes)
	assert.Equal(t, 0, out.WorkDuration.BreakMinutes)
	assert.Equal(t, 540, out.WorkDuration.ActualWorkMinutes)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
}

func TestCheckOutAutoClosesOpenBreak(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(3 * time.Hour))
	_, err := f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	require.NoError(t, err)

	// Checkout while still on break: the break ends at checkout time.
	f.setNow(baseTime.Add(4 * time.Hour))
	out, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	assert.Equal(t, 240, out.WorkDuration.TotalMinutes)
	assert.Equal(t, 60, out.WorkDuration.BreakMinutes)
	assert.Equal(t, 180, out.WorkDuration.ActualWorkMinutes)

	status, err := f.svc.GetStatus(context.Background(), attendance.StatusRequest{
		RequesterID: testEmployeeID,
		BusinessID:  testBusinessID,
	})
	require.NoError(t, err)
	require.Len(t, status.Breaks, 1)
	require.NotNil(t, status.Breaks[0].EndTime)
	assert.Equal(t, "2025-06-02T13:00:00Z", *status.Breaks[0].EndTime)
}

func TestCheckOutWithBreakDurations(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(3 * time.Hour)) // 12:00
	started, err := f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		Type:         attendance.BreakTypeMeal,
	})
	require.NoError(t, err)

	f.setNow(baseTime.Add(3*time.Hour + 30*time.Minute)) // 12:30
	_, err = f.svc.EndBreak(context.Background(), attendance.EndBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		BreakID:      started.BreakID,
	})
	require.NoError(t, err)

	f.setNow(baseTime.Add(9 * time.Hour)) // 18:00
	out, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	assert.Equal(t, 540, out.WorkDuration.TotalMinutes)
	assert.Equal(t, 30, out.WorkDuration.BreakMinutes)
	assert.Equal(t, 510, out.WorkDuration.ActualWorkMinutes)
}

// ---------------------------------------------------------------------------
// Breaks

func TestStartBreak(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(3 * time.Hour))
	started, err := f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, started.BreakID)
	assert.Equal(t, attendance.BreakTypeNormal, started.Type)
	assert.Equal(t, attendance.StatusOnBreak, started.Status)
}

func TestStartBreakTwice(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	_, err := f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	require.NoError(t, err)

	_, err = f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)
}

func TestStartBreakAfterCheckout(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(8 * time.Hour))
	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	_, err = f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	assert.ErrorIs(t, err, attendance.ErrNoActiveCheckIn)
}

func TestEndBreak(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(3 * time.Hour))
	started, err := f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	require.NoError(t, err)

	f.setNow(baseTime.Add(3*time.Hour + 45*time.Minute))
	ended, err := f.svc.EndBreak(context.Background(), attendance.EndBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		BreakID:      started.BreakID,
	})
	require.NoError(t, err)

	assert.Equal(t, started.BreakID, ended.BreakID)
	assert.Equal(t, 45, ended.DurationMinutes)
	assert.Equal(t, attendance.StatusCheckedIn, ended.Status)
}

func TestEndBreakWithoutActiveBreak(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	_, err := f.svc.EndBreak(context.Background(), attendance.EndBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		BreakID:      "break-missing",
	})
	assert.ErrorIs(t, err, attendance.ErrNoActiveBreak)
}

func TestEndBreakUnknownID(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	_, err := f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	require.NoError(t, err)

	_, err = f.svc.EndBreak(context.Background(), attendance.EndBreakRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		BreakID:      "break-missing",
	})
	assert.ErrorIs(t, err, attendance.ErrBreakNotFound)
}

// ---------------------------------------------------------------------------
// Cancellation

func TestCancelCheckInWithinWindow(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(4*time.Minute + 59*time.Second))
	err := f.svc.CancelCheckIn(context.Background(), attendance.CancelCheckInRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		Reason:       "pressed by mistake",
	})
	require.NoError(t, err)

	// The record is genuinely gone, not soft-deleted.
	status, err := f.svc.GetStatus(context.Background(), attendance.StatusRequest{
		RequesterID: testEmployeeID,
		BusinessID:  testBusinessID,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotCheckedIn, status.Status)

	// And the user may check in again.
	_, err = f.svc.CheckIn(context.Background(), gpsCheckIn(testEmployeeID))
	assert.NoError(t, err)

	// The audit trail keeps the cancellation.
	entries := f.attRepo.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, attendance.AuditActionCheckInCancelled, entries[0].Action)
	assert.Equal(t, resp.AttendanceID, entries[0].AttendanceID)
	assert.Equal(t, "pressed by mistake", entries[0].Reason)
}

func TestCancelCheckInAfterWindow(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(5*time.Minute + time.Second))
	err := f.svc.CancelCheckIn(context.Background(), attendance.CancelCheckInRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		Reason:       "too late",
	})
	assert.ErrorIs(t, err, attendance.ErrCancellationTimeExpired)
}

func TestCancelCheckInAtExactWindow(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	// Exactly five minutes is still within the grace window.
	f.setNow(baseTime.Add(5 * time.Minute))
	err := f.svc.CancelCheckIn(context.Background(), attendance.CancelCheckInRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		Reason:       "just in time",
	})
	assert.NoError(t, err)
}

func TestCancelCheckInAfterCheckout(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(2 * time.Minute))
	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	err = f.svc.CancelCheckIn(context.Background(), attendance.CancelCheckInRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
		Reason:       "changed my mind",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCancelCheckInRequiresReason(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	err := f.svc.CancelCheckIn(context.Background(), attendance.CancelCheckInRequest{
		UserID:       testEmployeeID,
		AttendanceID: resp.AttendanceID,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "reason is required")
}

// ---------------------------------------------------------------------------
// Ownership

func TestForeignRecordReadsAsNotFound(t *testing.T) {
	f := newFixture(t)
	resp := f.checkIn(t, testEmployeeID)

	// Another user referencing the record by ID gets not-found, never a
	// permission error that would confirm the record exists.
	_, err := f.svc.StartBreak(context.Background(), attendance.StartBreakRequest{
		UserID:       testOtherID,
		AttendanceID: resp.AttendanceID,
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	err = f.svc.CancelCheckIn(context.Background(), attendance.CancelCheckInRequest{
		UserID:       testOtherID,
		AttendanceID: resp.AttendanceID,
		Reason:       "not mine",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

// ---------------------------------------------------------------------------
// Status

func TestGetStatusNotCheckedIn(t *testing.T) {
	f := newFixture(t)

	status, err := f.svc.GetStatus(context.Background(), attendance.StatusRequest{
		RequesterID: testEmployeeID,
		BusinessID:  testBusinessID,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotCheckedIn, status.Status)
	assert.Equal(t, "2025-06-02", status.WorkDate)
	assert.Nil(t, status.AttendanceID)
}

func TestGetStatusCheckedOutIncludesDuration(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(8 * time.Hour))
	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	status, err := f.svc.GetStatus(context.Background(), attendance.StatusRequest{
		RequesterID: testEmployeeID,
		BusinessID:  testBusinessID,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedOut, status.Status)
	require.NotNil(t, status.WorkDuration)
	assert.Equal(t, 480, status.WorkDuration.TotalMinutes)
}

func TestGetStatusDelegatedByManager(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	status, err := f.svc.GetStatus(context.Background(), attendance.StatusRequest{
		RequesterID:  testManagerID,
		TargetUserID: testEmployeeID,
		BusinessID:   testBusinessID,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, status.Status)
}

func TestGetStatusDelegatedByEmployeeDenied(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	_, err := f.svc.GetStatus(context.Background(), attendance.StatusRequest{
		RequesterID:  testOtherID,
		TargetUserID: testEmployeeID,
		BusinessID:   testBusinessID,
	})
	assert.ErrorIs(t, err, user.ErrInsufficientRole)
}

func TestGetStatusHistoricalDate(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	status, err := f.svc.GetStatus(context.Background(), attendance.StatusRequest{
		RequesterID: testEmployeeID,
		BusinessID:  testBusinessID,
		Date:        "2025-05-30",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotCheckedIn, status.Status)
	assert.Equal(t, "2025-05-30", status.WorkDate)
}

// ---------------------------------------------------------------------------
// History

func TestGetMyAttendance(t *testing.T) {
	f := newFixture(t)

	// Three full days.
	for day := 2; day <= 4; day++ {
		f.setNow(time.Date(2025, 6, day, 9, 0, 0, 0, time.UTC))
		f.checkIn(t, testEmployeeID)
		f.setNow(time.Date(2025, 6, day, 18, 0, 0, 0, time.UTC))
		_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
			UserID:     testEmployeeID,
			BusinessID: testBusinessID,
		})
		require.NoError(t, err)
	}

	list, err := f.svc.GetMyAttendance(context.Background(), attendance.MyAttendanceFilter{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), list.TotalCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.Limit)
	assert.Equal(t, 1, list.TotalPages)
	require.Len(t, list.Attendances, 3)

	// Newest first.
	assert.Equal(t, "2025-06-04", list.Attendances[0].WorkDate)
	assert.Equal(t, "2025-06-02", list.Attendances[2].WorkDate)
	require.NotNil(t, list.Attendances[0].WorkDuration)
	assert.Equal(t, 540, list.Attendances[0].WorkDuration.TotalMinutes)
}

func TestGetMyAttendancePagination(t *testing.T) {
	f := newFixture(t)

	for day := 2; day <= 6; day++ {
		f.setNow(time.Date(2025, 6, day, 9, 0, 0, 0, time.UTC))
		f.checkIn(t, testEmployeeID)
		f.setNow(time.Date(2025, 6, day, 18, 0, 0, 0, time.UTC))
		_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
			UserID:     testEmployeeID,
			BusinessID: testBusinessID,
		})
		require.NoError(t, err)
	}

	list, err := f.svc.GetMyAttendance(context.Background(), attendance.MyAttendanceFilter{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		Page:       2,
		Limit:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), list.TotalCount)
	assert.Equal(t, 3, list.TotalPages)
	require.Len(t, list.Attendances, 2)
	assert.Equal(t, "2025-06-04", list.Attendances[0].WorkDate)
}

func TestGetMyAttendanceDateRange(t *testing.T) {
	f := newFixture(t)

	for day := 2; day <= 4; day++ {
		f.setNow(time.Date(2025, 6, day, 9, 0, 0, 0, time.UTC))
		f.checkIn(t, testEmployeeID)
		f.setNow(time.Date(2025, 6, day, 18, 0, 0, 0, time.UTC))
		_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
			UserID:     testEmployeeID,
			BusinessID: testBusinessID,
		})
		require.NoError(t, err)
	}

	start, end := "2025-06-03", "2025-06-03"
	list, err := f.svc.GetMyAttendance(context.Background(), attendance.MyAttendanceFilter{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		StartDate:  &start,
		EndDate:    &end,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), list.TotalCount)
	require.Len(t, list.Attendances, 1)
	assert.Equal(t, "2025-06-03", list.Attendances[0].WorkDate)
}

// ---------------------------------------------------------------------------
// Eligibility

func TestValidateEligibilityCanCheckIn(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ValidateEligibility(context.Background(), attendance.EligibilityRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		Latitude:   ptr(officeLat),
		Longitude:  ptr(officeLon),
	})
	require.NoError(t, err)

	assert.True(t, resp.CanCheckIn)
	assert.Nil(t, resp.Reason)
	assert.Equal(t, attendance.StatusNotCheckedIn, resp.CurrentStatus)
	require.NotNil(t, resp.DistanceMeters)
	assert.InDelta(t, 0, *resp.DistanceMeters, 0.001)
}

func TestValidateEligibilityOutsideGeofence(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ValidateEligibility(context.Background(), attendance.EligibilityRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
		Latitude:   ptr(37.5000),
		Longitude:  ptr(127.0300),
	})
	require.NoError(t, err)

	assert.False(t, resp.CanCheckIn)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "outside_geofence", *resp.Reason)
	require.NotNil(t, resp.DistanceMeters)
	assert.InDelta(t, 315.2038, *resp.DistanceMeters, 0.001)
}

func TestValidateEligibilityAlreadyCheckedIn(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	resp, err := f.svc.ValidateEligibility(context.Background(), attendance.EligibilityRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	assert.False(t, resp.CanCheckIn)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "already_checked_in", *resp.Reason)
	assert.Equal(t, attendance.StatusCheckedIn, resp.CurrentStatus)
}

func TestValidateEligibilityAfterCheckout(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, testEmployeeID)

	f.setNow(baseTime.Add(8 * time.Hour))
	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	resp, err := f.svc.ValidateEligibility(context.Background(), attendance.EligibilityRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	assert.False(t, resp.CanCheckIn)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "already_checked_out", *resp.Reason)
	assert.Equal(t, attendance.StatusCheckedOut, resp.CurrentStatus)
}

func TestValidateEligibilityWithoutLocation(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ValidateEligibility(context.Background(), attendance.EligibilityRequest{
		UserID:     testEmployeeID,
		BusinessID: testBusinessID,
	})
	require.NoError(t, err)

	assert.True(t, resp.CanCheckIn)
	assert.Nil(t, resp.DistanceMeters)
}
