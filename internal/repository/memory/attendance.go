// Package memory provides in-memory repository implementations with the
// same locking discipline as the PostgreSQL ones. Used as test doubles for
// the service layer.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu      sync.Mutex
	records map[string]*attendance.Attendance
	breaks  map[string]*attendance.BreakInterval
	audit   []attendance.AuditEntry

	lockMu sync.Mutex
	locks  map[attendance.RecordKey]*sync.Mutex
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		records: make(map[string]*attendance.Attendance),
		breaks:  make(map[string]*attendance.BreakInterval),
		locks:   make(map[attendance.RecordKey]*sync.Mutex),
	}
}

// WithRecordLock implements attendance.RecordLocker with a mutex per record
// key, mirroring the advisory-lock serialization of the SQL implementation.
func (r *AttendanceRepository) WithRecordLock(ctx context.Context, key attendance.RecordKey, fn func(ctx context.Context) error) error {
	r.lockMu.Lock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	r.lockMu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(ctx)
}

func (r *AttendanceRepository) clone(att *attendance.Attendance) attendance.Attendance {
	out := *att
	out.Breaks = nil
	for _, br := range r.breaks {
		if br.AttendanceID == att.ID {
			out.Breaks = append(out.Breaks, *br)
		}
	}
	sort.Slice(out.Breaks, func(i, j int) bool {
		return out.Breaks[i].StartTime.Before(out.Breaks[j].StartTime)
	})
	return out
}

// Create implements attendance.Repository.
func (r *AttendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.UserID == att.UserID &&
			existing.BusinessID == att.BusinessID &&
			existing.WorkDate == att.WorkDate &&
			existing.Status != attendance.StatusCheckedOut {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}

	now := time.Now().UTC()
	att.CreatedAt = now
	att.UpdatedAt = now
	stored := att
	r.records[att.ID] = &stored
	return att, nil
}

// GetByID implements attendance.Repository.
func (r *AttendanceRepository) GetByID(ctx context.Context, id string, userID string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, ok := r.records[id]
	if !ok || att.UserID != userID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.clone(att), nil
}

// GetByUserAndDate implements attendance.Repository.
func (r *AttendanceRepository) GetByUserAndDate(ctx context.Context, userID, businessID, workDate string) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *attendance.Attendance
	for _, att := range r.records {
		if att.UserID == userID && att.BusinessID == businessID && att.WorkDate == workDate {
			if latest == nil || att.CheckInTime.After(latest.CheckInTime) {
				latest = att
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	cloned := r.clone(latest)
	return &cloned, nil
}

// GetOpenByUserAndBusiness implements attendance.Repository.
func (r *AttendanceRepository) GetOpenByUserAndBusiness(ctx context.Context, userID, businessID string) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, att := range r.records {
		if att.UserID == userID && att.BusinessID == businessID && att.Status != attendance.StatusCheckedOut {
			cloned := r.clone(att)
			return &cloned, nil
		}
	}
	return nil, nil
}

// Update implements attendance.Repository.
func (r *AttendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[att.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	stored.CheckOutTime = att.CheckOutTime
	stored.CheckOutLatitude = att.CheckOutLatitude
	stored.CheckOutLongitude = att.CheckOutLongitude
	stored.Status = att.Status
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements attendance.Repository.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	for breakID, br := range r.breaks {
		if br.AttendanceID == id {
			delete(r.breaks, breakID)
		}
	}
	return nil
}

// CreateBreak implements attendance.Repository.
func (r *AttendanceRepository) CreateBreak(ctx context.Context, br attendance.BreakInterval) (attendance.BreakInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := br
	r.breaks[br.ID] = &stored
	return br, nil
}

// CloseBreak implements attendance.Repository.
func (r *AttendanceRepository) CloseBreak(ctx context.Context, breakID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	br, ok := r.breaks[breakID]
	if !ok || br.EndTime != nil {
		return attendance.ErrBreakNotFound
	}
	end := at
	br.EndTime = &end
	return nil
}

// ListByUser implements attendance.Repository.
func (r *AttendanceRepository) ListByUser(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []attendance.Attendance
	for _, att := range r.records {
		if att.UserID != filter.UserID || att.BusinessID != filter.BusinessID {
			continue
		}
		if filter.StartDate != nil && *filter.StartDate != "" && att.WorkDate < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && *filter.EndDate != "" && att.WorkDate > *filter.EndDate {
			continue
		}
		matched = append(matched, r.clone(att))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].WorkDate != matched[j].WorkDate {
			return matched[i].WorkDate > matched[j].WorkDate
		}
		return matched[i].CheckInTime.After(matched[j].CheckInTime)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetDayStatuses implements attendance.Repository.
func (r *AttendanceRepository) GetDayStatuses(ctx context.Context, businessID, workDate string) (map[string]attendance.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make(map[string]attendance.Status)
	for _, att := range r.records {
		if att.BusinessID == businessID && att.WorkDate == workDate {
			statuses[att.UserID] = att.Status
		}
	}
	return statuses, nil
}

// AppendAudit implements attendance.Repository.
func (r *AttendanceRepository) AppendAudit(ctx context.Context, entry attendance.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audit = append(r.audit, entry)
	return nil
}

// AuditEntries returns a snapshot of appended audit entries.
func (r *AttendanceRepository) AuditEntries() []attendance.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]attendance.AuditEntry, len(r.audit))
	copy(out, r.audit)
	return out
}
