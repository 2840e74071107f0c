package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. Implementations
// must return ErrAttendanceNotFound for records that do not exist or belong
// to a different user, so ownership is never disclosed as a permission error.
type Repository interface {
	// Create inserts a new record. Returns ErrAlreadyCheckedIn when an open
	// record for the same (user, business, work date) already exists.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a record owned by userID, with its breaks.
	GetByID(ctx context.Context, id string, userID string) (Attendance, error)

	// GetByUserAndDate retrieves the record for a (user, business, work date)
	// key regardless of status, or nil when none exists.
	GetByUserAndDate(ctx context.Context, userID, businessID, workDate string) (*Attendance, error)

	// GetOpenByUserAndBusiness retrieves the record with status != checked_out
	// for the user at the business, or nil.
	GetOpenByUserAndBusiness(ctx context.Context, userID, businessID string) (*Attendance, error)

	// Update persists checkout fields and status for an existing record.
	Update(ctx context.Context, att Attendance) error

	// Delete removes a record and its breaks. Used by cancellation only.
	Delete(ctx context.Context, id string) error

	CreateBreak(ctx context.Context, br BreakInterval) (BreakInterval, error)
	CloseBreak(ctx context.Context, breakID string, at time.Time) error

	// ListByUser retrieves attendance history with filters and pagination.
	ListByUser(ctx context.Context, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// GetDayStatuses returns userID -> status for every record a business has
	// on the given work date.
	GetDayStatuses(ctx context.Context, businessID, workDate string) (map[string]Status, error)

	AppendAudit(ctx context.Context, entry AuditEntry) error
}

// RecordLocker serializes mutations on one attendance record key. fn runs
// inside a transaction; any error rolls back everything fn wrote, so no
// half-applied transition is ever visible.
type RecordLocker interface {
	WithRecordLock(ctx context.Context, key RecordKey, fn func(ctx context.Context) error) error
}
