package attendance

import (
	"time"
)

// Status discriminates the record shape: present/late/half-day carry
// InTime (and OutTime once closed out), leave carries LeaveReason, off and
// holiday carry neither.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
	StatusOff     Status = "off"
	StatusHoliday Status = "holiday"
)

// IsPresence reports whether the status counts as a worked day. Late and
// half-day are presence sub-kinds, not absences.
func (s Status) IsPresence() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

type OvertimeStatus string

const (
	OvertimeApproved OvertimeStatus = "approved"
	OvertimeRejected OvertimeStatus = "rejected"
)

// MarkedBySelf is the MarkedBy value for employee self-marks; any other
// value is the UID of the administrator who wrote the record.
const MarkedBySelf = "self"

// Record is the authoritative attendance record for one employee on one
// calendar day. At most one exists per (EmployeeUID, Date); the storage
// layer enforces this with a conditional create.
type Record struct {
	ID          string
	EmployeeUID string
	Date        time.Time // calendar day, UTC midnight
	Status      Status
	InTime      *time.Time // absolute, offset preserved from capture
	OutTime     *time.Time
	LeaveReason *string
	MarkedBy    string

	// Derived by the classifier; rewritten on recompute.
	LateMinutes     int
	EarlyLeaveHours float64
	OvertimeHours   float64
	OvertimeStatus  OvertimeStatus
	OvertimeNote    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}
