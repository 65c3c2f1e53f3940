package policy

import (
	"time"
)

// Policy is the immutable-per-evaluation bag of attendance and payroll
// tunables. It is always passed into classifier and aggregator calls as a
// value; nothing in the engine reads it from ambient state, so a recompute
// can be run against any historical snapshot.
type Policy struct {
	ID                   string
	OfficeStartTime      string // "HH:MM", 24h, office-local
	OfficeEndTime        string // "HH:MM"
	LateMarkAfterMinutes int    // grace buffer past office start
	HalfDayAfterMinutes  int    // late minutes at which a late mark becomes half-day
	SalaryStartDay       int    // day-of-month opening the salary month, 1..28
	Currency             string
	WorkHoursPerDay      int // divisor for per-hour salary
	SalaryDivisorDays    int // divisor for per-day salary
	UpdatedAt            time.Time
}

// Default returns the policy used until an administrator saves one.
func Default() Policy {
	return Policy{
		OfficeStartTime:      "10:00",
		OfficeEndTime:        "18:00",
		LateMarkAfterMinutes: 15,
		HalfDayAfterMinutes:  60,
		SalaryStartDay:       6,
		Currency:             "PKR",
		WorkHoursPerDay:      8,
		SalaryDivisorDays:    30,
	}
}

// minutesOfDay parses "HH:MM". The value is validated on write, so a
// malformed stored value degrades to midnight rather than failing reads.
func minutesOfDay(s string) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// OfficeStartMinutes returns the office start as minutes since midnight.
func (p Policy) OfficeStartMinutes() int {
	return minutesOfDay(p.OfficeStartTime)
}

// OfficeEndMinutes returns the office end as minutes since midnight.
func (p Policy) OfficeEndMinutes() int {
	return minutesOfDay(p.OfficeEndTime)
}
