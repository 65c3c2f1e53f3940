package attendance

import (
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
)

// UpsertMode selects the administrative write shape.
type UpsertMode string

const (
	ModeAttendance UpsertMode = "attendance"
	ModeLeave      UpsertMode = "leave"
	ModeOff        UpsertMode = "off"
)

type MarkRequest struct {
	// Status requested by the employee; the classifier may override present
	// to late or half-day. Only present, leave and off are accepted.
	Status      Status  `json:"status"`
	LeaveReason *string `json:"leave_reason"`
	IsEarlyOff  bool    `json:"is_early_off"`
}

func (r MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.IsEarlyOff {
		switch r.Status {
		case StatusPresent, StatusLeave, StatusOff:
		default:
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of present, leave, off"})
		}
		if r.Status == StatusLeave && (r.LeaveReason == nil || validator.IsEmpty(*r.LeaveReason)) {
			errs = append(errs, validator.ValidationError{Field: "leave_reason", Message: "is required for leave"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdminUpsertRequest struct {
	EmployeeUID string     `json:"-"`
	Date        string     `json:"-"` // "YYYY-MM-DD", from the URL
	Mode        UpsertMode `json:"mode"`
	InTime      *string    `json:"in_time"`  // RFC3339
	OutTime     *string    `json:"out_time"` // RFC3339
	LeaveReason *string    `json:"leave_reason"`
}

// Validate checks the request shape. today anchors the past-date out-time
// rule; callers pass their pinned clock, truncated to the calendar day.
func (r AdminUpsertRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeUID) {
		errs = append(errs, validator.ValidationError{Field: "employee_uid", Message: "is required"})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}

	switch r.Mode {
	case ModeAttendance:
		if r.InTime == nil {
			errs = append(errs, validator.ValidationError{Field: "in_time", Message: "is required for attendance mode"})
		}
		// A fully elapsed day cannot be left open.
		if ok && r.OutTime == nil && date.Before(today) {
			errs = append(errs, validator.ValidationError{Field: "out_time", Message: "is required for past dates"})
		}
	case ModeLeave:
		if r.LeaveReason == nil || validator.IsEmpty(*r.LeaveReason) {
			errs = append(errs, validator.ValidationError{Field: "leave_reason", Message: "is required for leave mode"})
		}
	case ModeOff:
	default:
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "must be one of attendance, leave, off"})
	}

	if r.InTime != nil {
		if _, err := time.Parse(time.RFC3339, *r.InTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: "in_time", Message: "must be RFC3339"})
		}
	}
	if r.OutTime != nil {
		if _, err := time.Parse(time.RFC3339, *r.OutTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: "out_time", Message: "must be RFC3339"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeDecisionRequest struct {
	EmployeeUID string  `json:"-"`
	Date        string  `json:"-"`
	Decision    string  `json:"decision"` // approved | rejected
	Note        *string `json:"note"`
}

func (r OvertimeDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeUID) {
		errs = append(errs, validator.ValidationError{Field: "employee_uid", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsInSlice(r.Decision, []string{string(OvertimeApproved), string(OvertimeRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "must be approved or rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string  `json:"id"`
	EmployeeUID     string  `json:"employee_uid"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	EmployeeCode    *string `json:"employee_code,omitempty"`
	Date            string  `json:"date"`
	Status          Status  `json:"status"`
	InTime          *string `json:"in_time,omitempty"`
	OutTime         *string `json:"out_time,omitempty"`
	LeaveReason     *string `json:"leave_reason,omitempty"`
	MarkedBy        string  `json:"marked_by"`
	LateMinutes     int     `json:"late_minutes"`
	EarlyLeaveHours float64 `json:"early_leave_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	OvertimeStatus  string  `json:"overtime_status"`
	OvertimeNote    *string `json:"overtime_note,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// RecomputeResult reports a batch reclassification. Errors holds per-record
// failures; a partially successful run is not an error.
type RecomputeResult struct {
	MonthKey string   `json:"month_key"`
	Scanned  int      `json:"scanned"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors,omitempty"`
}
