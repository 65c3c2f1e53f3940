package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_uid, date, status, in_time, out_time, leave_reason, marked_by,
	late_minutes, early_leave_hours, overtime_hours, overtime_status, overtime_note,
	created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeUID, &rec.Date, &rec.Status, &rec.InTime, &rec.OutTime,
		&rec.LeaveReason, &rec.MarkedBy, &rec.LateMinutes, &rec.EarlyLeaveHours,
		&rec.OvertimeHours, &rec.OvertimeStatus, &rec.OvertimeNote,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// CreateIfAbsent implements attendance.AttendanceRepository. The partial
// unique index on (employee_uid, date) plus ON CONFLICT DO NOTHING makes the
// single-shot invariant atomic: of two racing inserts exactly one returns a
// row.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_uid, date, status, in_time, out_time, leave_reason, marked_by,
			late_minutes, early_leave_hours, overtime_hours, overtime_status, overtime_note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (employee_uid, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeUID, rec.Date, rec.Status, rec.InTime, rec.OutTime,
		rec.LeaveReason, rec.MarkedBy, rec.LateMinutes, rec.EarlyLeaveHours,
		rec.OvertimeHours, rec.OvertimeStatus, rec.OvertimeNote,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: a record already owns this day.
			return attendance.Record{}, false, nil
		}
		return attendance.Record{}, false, fmt.Errorf("failed to create attendance record: %w", database.MapError(err))
	}

	return rec, true, nil
}

// SetClockOut implements attendance.AttendanceRepository. Only open presence
// records qualify: the status filter keeps leave, off and holiday records
// closed to out times, and the out_time IS NULL clause closes the
// read-then-write race so only the first of two concurrent early-off marks
// applies.
func (a *attendanceRepository) SetClockOut(ctx context.Context, employeeUID string, date time.Time, out time.Time, earlyLeaveHours, overtimeHours float64) (*attendance.Record, bool, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET out_time = $3, early_leave_hours = $4, overtime_hours = $5, updated_at = NOW()
		WHERE employee_uid = $1 AND date = $2
			AND status IN ('present', 'late', 'half-day')
			AND out_time IS NULL
		RETURNING ` + attendanceColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeUID, date, out, earlyLeaveHours, overtimeHours))
	if err == nil {
		return &rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to set clock-out: %w", database.MapError(err))
	}

	// No record, a non-presence record, or an already closed one; the caller
	// distinguishes them from the returned record.
	existing, err := a.GetByEmployeeAndDate(ctx, employeeUID, date)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeUID string, date time.Time) (*attendance.Record, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_uid = $1 AND date = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeUID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", database.MapError(err))
	}
	return &rec, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	query := `
		SELECT a.id, a.employee_uid, a.date, a.status, a.in_time, a.out_time,
			   a.leave_reason, a.marked_by, a.late_minutes, a.early_leave_hours,
			   a.overtime_hours, a.overtime_status, a.overtime_note,
			   a.created_at, a.updated_at,
			   e.full_name AS employee_name,
			   e.employee_code AS employee_code
		FROM attendance_records a
		LEFT JOIN employees e ON e.uid = a.employee_uid
		WHERE a.date = $1
		ORDER BY e.employee_code
	`
	return a.queryJoined(ctx, query, date)
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeUID string, start, end time.Time) ([]attendance.Record, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_uid = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	rows, err := q.Query(ctx, query, employeeUID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", database.MapError(err))
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	query := `
		SELECT a.id, a.employee_uid, a.date, a.status, a.in_time, a.out_time,
			   a.leave_reason, a.marked_by, a.late_minutes, a.early_leave_hours,
			   a.overtime_hours, a.overtime_status, a.overtime_note,
			   a.created_at, a.updated_at,
			   e.full_name AS employee_name,
			   e.employee_code AS employee_code
		FROM attendance_records a
		LEFT JOIN employees e ON e.uid = a.employee_uid
		WHERE a.date >= $1 AND a.date <= $2
		ORDER BY a.date ASC, e.employee_code
	`
	return a.queryJoined(ctx, query, start, end)
}

func (a *attendanceRepository) queryJoined(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", database.MapError(err))
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.EmployeeUID, &rec.Date, &rec.Status, &rec.InTime, &rec.OutTime,
			&rec.LeaveReason, &rec.MarkedBy, &rec.LateMinutes, &rec.EarlyLeaveHours,
			&rec.OvertimeHours, &rec.OvertimeStatus, &rec.OvertimeNote,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Upsert implements attendance.AttendanceRepository. Administrative path:
// replaces the record for (employee_uid, date) wholesale.
func (a *attendanceRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_uid, date, status, in_time, out_time, leave_reason, marked_by,
			late_minutes, early_leave_hours, overtime_hours, overtime_status, overtime_note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (employee_uid, date) DO UPDATE SET
			status = EXCLUDED.status,
			in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			leave_reason = EXCLUDED.leave_reason,
			marked_by = EXCLUDED.marked_by,
			late_minutes = EXCLUDED.late_minutes,
			early_leave_hours = EXCLUDED.early_leave_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			overtime_status = EXCLUDED.overtime_status,
			overtime_note = EXCLUDED.overtime_note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeUID, rec.Date, rec.Status, rec.InTime, rec.OutTime,
		rec.LeaveReason, rec.MarkedBy, rec.LateMinutes, rec.EarlyLeaveHours,
		rec.OvertimeHours, rec.OvertimeStatus, rec.OvertimeNote,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", database.MapError(err))
	}

	return rec, nil
}

// Rewrite implements attendance.AttendanceRepository. One atomic UPDATE per
// record so a recompute never interleaves partial field updates.
func (a *attendanceRepository) Rewrite(ctx context.Context, rec attendance.Record) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET status = $3, late_minutes = $4, early_leave_hours = $5, overtime_hours = $6,
			updated_at = NOW()
		WHERE employee_uid = $1 AND date = $2
	`

	tag, err := q.Exec(ctx, query, rec.EmployeeUID, rec.Date, rec.Status,
		rec.LateMinutes, rec.EarlyLeaveHours, rec.OvertimeHours)
	if err != nil {
		return fmt.Errorf("failed to rewrite attendance record: %w", database.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// SetOvertimeStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetOvertimeStatus(ctx context.Context, employeeUID string, date time.Time, status attendance.OvertimeStatus, note *string) (attendance.Record, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET overtime_status = $3, overtime_note = $4, updated_at = NOW()
		WHERE employee_uid = $1 AND date = $2
		RETURNING ` + attendanceColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeUID, date, status, note))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to set overtime status: %w", database.MapError(err))
	}
	return rec, nil
}
