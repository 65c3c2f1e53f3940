package attendance

import "errors"

// Attendance domain errors
var (
	// Self-mark errors. ErrAlreadyMarked and ErrNotMarkedYet are distinct on
	// purpose: a duplicate same-day mark must not be confused with an
	// early-off against a missing record.
	ErrAlreadyMarked = errors.New("attendance already marked for today")
	ErrNotMarkedYet  = errors.New("no attendance record to close out today")

	// ErrNotClockedIn rejects an early-off against a record that carries no
	// clock-in. Leave, off and holiday records never acquire out times.
	ErrNotClockedIn = errors.New("today's record has no clock-in to close out")

	ErrRecordNotFound = errors.New("attendance record not found")
)
