package attendance

import (
	"time"
)

type Status string

const (
	StatusNotCheckedIn Status = "not_checked_in"
	StatusCheckedIn    Status = "checked_in"
	StatusOnBreak      Status = "on_break"
	StatusCheckedOut   Status = "checked_out"
)

type Method string

const (
	MethodGPS Method = "gps"
	MethodQR  Method = "qr"
)

type BreakType string

const (
	BreakTypeNormal BreakType = "normal"
	BreakTypeMeal   BreakType = "meal"
)

// Attendance is the per (user, business, work date) record. At most one
// record per key may have a status other than checked_out.
type Attendance struct {
	ID         string
	UserID     string
	BusinessID string

	// WorkDate is the business-local calendar day ("2006-01-02"), not a
	// timestamp. Absolute times below are stored in UTC.
	WorkDate string

	CheckInTime      time.Time
	CheckInLatitude  *float64
	CheckInLongitude *float64
	CheckInMethod    Method

	CheckOutTime      *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	Status Status
	Breaks []BreakInterval

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BreakInterval is one break within an attendance record. EndTime == nil
// means the break is still open; at most one open break per record.
type BreakInterval struct {
	ID           string
	AttendanceID string
	StartTime    time.Time
	EndTime      *time.Time
	Type         BreakType
}

// AuditEntry records irreversible domain actions, such as cancellation of a
// check-in, which removes the record itself from history.
type AuditEntry struct {
	ID           string
	Action       string
	AttendanceID string
	UserID       string
	BusinessID   string
	Reason       string
	CreatedAt    time.Time
}

const AuditActionCheckInCancelled = "check_in_cancelled"

// RecordKey identifies the serialization unit for attendance mutations.
// All state transitions for the same key must run under the same lock.
type RecordKey struct {
	UserID     string
	BusinessID string
	WorkDate   string
}

func (k RecordKey) String() string {
	return k.UserID + ":" + k.BusinessID + ":" + k.WorkDate
}
