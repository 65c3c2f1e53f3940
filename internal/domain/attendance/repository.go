package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// per-day uniqueness invariant lives here: CreateIfAbsent and SetClockOut
// are conditional writes so racing callers are serialized by the store, not
// by a read-then-write in the service.
type AttendanceRepository interface {
	// CreateIfAbsent inserts the record unless one already exists for
	// (EmployeeUID, Date). created=false means another record won the day;
	// exactly one of two concurrent calls observes created=true.
	CreateIfAbsent(ctx context.Context, rec Record) (Record, bool, error)

	// SetClockOut closes out an existing record: it sets OutTime and the
	// derived leave fields only when OutTime is still unset. applied=false
	// with a non-nil record means the record was already closed (the settled
	// record is returned); a nil record means none exists for that day.
	SetClockOut(ctx context.Context, employeeUID string, date time.Time, out time.Time, earlyLeaveHours, overtimeHours float64) (*Record, bool, error)

	// GetByEmployeeAndDate returns nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeUID string, date time.Time) (*Record, error)

	// ListByDate returns every employee's record for the given day.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	// ListByEmployeeAndRange returns the employee's records with
	// start <= Date <= end, ascending by date.
	ListByEmployeeAndRange(ctx context.Context, employeeUID string, start, end time.Time) ([]Record, error)

	// ListByRange returns all records in the inclusive range, ascending by
	// (date, employee). Used by the batch recompute.
	ListByRange(ctx context.Context, start, end time.Time) ([]Record, error)

	// Upsert is the administrative write path; it replaces any existing
	// record for (EmployeeUID, Date) wholesale.
	Upsert(ctx context.Context, rec Record) (Record, error)

	// Rewrite atomically replaces status and derived fields of an existing
	// record, preserving its identity. Used by recompute.
	Rewrite(ctx context.Context, rec Record) error

	// SetOvertimeStatus flips the overtime approval flag.
	SetOvertimeStatus(ctx context.Context, employeeUID string, date time.Time, status OvertimeStatus, note *string) (Record, error)
}

// AttendanceService is the ledger: it owns the one-record-per-day invariant
// and routes every write through the classifier.
type AttendanceService interface {
	// Mark is the employee self-mark path, strictly single-shot per day
	// unless IsEarlyOff closes out today's existing record.
	Mark(ctx context.Context, req MarkRequest) (RecordResponse, error)

	// AdminUpsert bypasses the single-shot invariant (manual correction).
	AdminUpsert(ctx context.Context, req AdminUpsertRequest) (RecordResponse, error)

	// QueryByDate returns the records for a day, optionally for one employee.
	QueryByDate(ctx context.Context, date string, employeeUID *string) ([]RecordResponse, error)

	// MonthlyRecords returns an employee's records for a salary month,
	// ascending by date.
	MonthlyRecords(ctx context.Context, employeeUID string, monthKey string) ([]RecordResponse, error)

	// Recompute re-applies the classifier to every record in the salary
	// month under the current policy. Idempotent; failures on individual
	// records are collected, not fatal.
	Recompute(ctx context.Context, monthKey string) (RecomputeResult, error)

	// DecideOvertime approves or rejects a record's overtime.
	DecideOvertime(ctx context.Context, req OvertimeDecisionRequest) (RecordResponse, error)
}
