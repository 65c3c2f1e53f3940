// Package memory provides in-memory repository implementations for testing
// and development. The conditional-write semantics mirror the PostgreSQL
// repositories exactly, including under concurrent use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceKey struct {
	EmployeeUID string
	Date        string // "YYYY-MM-DD"
}

func attKey(employeeUID string, date time.Time) attendanceKey {
	return attendanceKey{EmployeeUID: employeeUID, Date: date.Format("2006-01-02")}
}

type AttendanceRepository struct {
	mu      sync.Mutex
	records map[attendanceKey]attendance.Record
}

// lessByEmployee matches the SQL listing order: employee code when the join
// populated it, employee UID otherwise.
func lessByEmployee(a, b attendance.Record) bool {
	if a.EmployeeCode != nil && b.EmployeeCode != nil && *a.EmployeeCode != *b.EmployeeCode {
		return *a.EmployeeCode < *b.EmployeeCode
	}
	return a.EmployeeUID < b.EmployeeUID
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[attendanceKey]attendance.Record)}
}

func (m *AttendanceRepository) CreateIfAbsent(_ context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := attKey(rec.EmployeeUID, rec.Date)
	if _, exists := m.records[k]; exists {
		return attendance.Record{}, false, nil
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	m.records[k] = rec
	return rec, true, nil
}

func (m *AttendanceRepository) SetClockOut(_ context.Context, employeeUID string, date time.Time, out time.Time, earlyLeaveHours, overtimeHours float64) (*attendance.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := attKey(employeeUID, date)
	rec, exists := m.records[k]
	if !exists {
		return nil, false, nil
	}
	if !rec.Status.IsPresence() || rec.OutTime != nil {
		existing := rec
		return &existing, false, nil
	}

	rec.OutTime = &out
	rec.EarlyLeaveHours = earlyLeaveHours
	rec.OvertimeHours = overtimeHours
	rec.UpdatedAt = time.Now()
	m.records[k] = rec
	return &rec, true, nil
}

func (m *AttendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeUID string, date time.Time) (*attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec, exists := m.records[attKey(employeeUID, date)]; exists {
		return &rec, nil
	}
	return nil, nil
}

func (m *AttendanceRepository) ListByDate(_ context.Context, date time.Time) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := date.Format("2006-01-02")
	var records []attendance.Record
	for k, rec := range m.records {
		if k.Date == day {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return lessByEmployee(records[i], records[j])
	})
	return records, nil
}

func (m *AttendanceRepository) ListByEmployeeAndRange(_ context.Context, employeeUID string, start, end time.Time) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []attendance.Record
	for _, rec := range m.records {
		if rec.EmployeeUID == employeeUID && !rec.Date.Before(start) && !rec.Date.After(end) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (m *AttendanceRepository) ListByRange(_ context.Context, start, end time.Time) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []attendance.Record
	for _, rec := range m.records {
		if !rec.Date.Before(start) && !rec.Date.After(end) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return lessByEmployee(records[i], records[j])
	})
	return records, nil
}

func (m *AttendanceRepository) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := attKey(rec.EmployeeUID, rec.Date)
	now := time.Now()
	if existing, exists := m.records[k]; exists {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.records[k] = rec
	return rec, nil
}

func (m *AttendanceRepository) Rewrite(_ context.Context, rec attendance.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := attKey(rec.EmployeeUID, rec.Date)
	existing, exists := m.records[k]
	if !exists {
		return attendance.ErrRecordNotFound
	}

	existing.Status = rec.Status
	existing.LateMinutes = rec.LateMinutes
	existing.EarlyLeaveHours = rec.EarlyLeaveHours
	existing.OvertimeHours = rec.OvertimeHours
	existing.UpdatedAt = time.Now()
	m.records[k] = existing
	return nil
}

func (m *AttendanceRepository) SetOvertimeStatus(_ context.Context, employeeUID string, date time.Time, status attendance.OvertimeStatus, note *string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := attKey(employeeUID, date)
	rec, exists := m.records[k]
	if !exists {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}

	rec.OvertimeStatus = status
	rec.OvertimeNote = note
	rec.UpdatedAt = time.Now()
	m.records[k] = rec
	return rec, nil
}
