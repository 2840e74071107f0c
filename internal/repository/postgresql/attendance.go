package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, user_id, business_id, work_date,
	check_in_time, check_in_latitude, check_in_longitude, check_in_method,
	check_out_time, check_out_latitude, check_out_longitude,
	status, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var workDate time.Time
	err := row.Scan(
		&att.ID, &att.UserID, &att.BusinessID, &workDate,
		&att.CheckInTime, &att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInMethod,
		&att.CheckOutTime, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.Status, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.WorkDate = workDate.Format("2006-01-02")
	return att, nil
}

func (a *attendanceRepository) loadBreaks(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT id, attendance_id, start_time, end_time, break_type
		FROM attendance_breaks
		WHERE attendance_id = $1
		ORDER BY start_time
	`, att.ID)
	if err != nil {
		return fmt.Errorf("failed to load breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var br attendance.BreakInterval
		if err := rows.Scan(&br.ID, &br.AttendanceID, &br.StartTime, &br.EndTime, &br.Type); err != nil {
			return fmt.Errorf("failed to scan break: %w", err)
		}
		att.Breaks = append(att.Breaks, br)
	}
	return rows.Err()
}

// Create implements attendance.Repository. The open-record unique index
// turns a racing duplicate insert into ErrAlreadyCheckedIn.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, user_id, business_id, work_date,
			check_in_time, check_in_latitude, check_in_longitude, check_in_method,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.UserID,
		att.BusinessID,
		att.WorkDate,
		att.CheckInTime,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckInMethod,
		att.Status,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.Repository. Scoped to the owning user so a
// foreign record is indistinguishable from a missing one.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, userID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE id = $1 AND user_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	if err := a.loadBreaks(ctx, &att); err != nil {
		return attendance.Attendance{}, err
	}

	return att, nil
}

// GetByUserAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID, businessID, workDate string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND business_id = $2 AND work_date = $3
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, businessID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	if err := a.loadBreaks(ctx, &att); err != nil {
		return nil, err
	}

	return &att, nil
}

// GetOpenByUserAndBusiness implements attendance.Repository.
func (a *attendanceRepository) GetOpenByUserAndBusiness(ctx context.Context, userID, businessID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND business_id = $2 AND status <> 'checked_out'
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open attendance: %w", err)
	}

	if err := a.loadBreaks(ctx, &att); err != nil {
		return nil, err
	}

	return &att, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1,
		    check_out_latitude = $2,
		    check_out_longitude = $3,
		    status = $4,
		    updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		att.CheckOutTime,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.Status,
		att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.Repository. Breaks go with the record via
// ON DELETE CASCADE.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// CreateBreak implements attendance.Repository.
func (a *attendanceRepository) CreateBreak(ctx context.Context, br attendance.BreakInterval) (attendance.BreakInterval, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_breaks (id, attendance_id, start_time, break_type)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, br.ID, br.AttendanceID, br.StartTime, br.Type); err != nil {
		return attendance.BreakInterval{}, fmt.Errorf("failed to create break: %w", err)
	}

	return br, nil
}

// CloseBreak implements attendance.Repository.
func (a *attendanceRepository) CloseBreak(ctx context.Context, breakID string, at time.Time) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_breaks
		SET end_time = $1
		WHERE id = $2 AND end_time IS NULL
	`, at, breakID)
	if err != nil {
		return fmt.Errorf("failed to close break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}

	return nil
}

// ListByUser implements attendance.Repository.
func (a *attendanceRepository) ListByUser(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "user_id = $1 AND business_id = $2"
	args := []interface{}{filter.UserID, filter.BusinessID}
	argIdx := 3

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE %s
		ORDER BY work_date DESC, check_in_time DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range records {
		if err := a.loadBreaks(ctx, &records[i]); err != nil {
			return nil, 0, err
		}
	}

	return records, total, nil
}

// GetDayStatuses implements attendance.Repository.
func (a *attendanceRepository) GetDayStatuses(ctx context.Context, businessID, workDate string) (map[string]attendance.Status, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT user_id, status
		FROM attendances
		WHERE business_id = $1 AND work_date = $2
	`, businessID, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get day statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]attendance.Status)
	for rows.Next() {
		var userID string
		var status attendance.Status
		if err := rows.Scan(&userID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan day status: %w", err)
		}
		statuses[userID] = status
	}
	return statuses, rows.Err()
}

// AppendAudit implements attendance.Repository.
func (a *attendanceRepository) AppendAudit(ctx context.Context, entry attendance.AuditEntry) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_audit_logs (id, action, attendance_id, user_id, business_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := q.Exec(ctx, query,
		entry.ID, entry.Action, entry.AttendanceID, entry.UserID, entry.BusinessID, entry.Reason, entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}
