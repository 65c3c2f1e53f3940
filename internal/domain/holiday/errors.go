package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already exists for this date")

	// ErrProtectedHoliday guards auto-materialized Sundays from deletion.
	ErrProtectedHoliday = errors.New("auto-generated Sunday holidays cannot be removed")
)
