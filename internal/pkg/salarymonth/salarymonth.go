// Package salarymonth implements the non-calendar "salary month": a one month
// window that starts on a configurable day-of-month and ends the day before
// that day in the following month. All attendance and payroll aggregation is
// scoped to this window, never to the Gregorian month.
package salarymonth

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Key identifies a salary month on the wire as "YYYY_MM" (zero-padded month,
// underscore separator). Exporters and UIs depend on this format literally.
type Key string

var keyRegex = regexp.MustCompile(`^(\d{4})_(0[1-9]|1[0-2])$`)

var ErrInvalidKey = errors.New("invalid salary month key, expected YYYY_MM")

// Parse validates the wire format and returns the key.
func Parse(s string) (Key, error) {
	if !keyRegex.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return Key(s), nil
}

func (k Key) String() string { return string(k) }

func (k Key) yearMonth() (int, time.Month) {
	var year, month int
	fmt.Sscanf(string(k), "%d_%d", &year, &month)
	return year, time.Month(month)
}

// KeyFor returns the salary month containing date. Days before startDay
// belong to the window that opened on startDay of the previous calendar
// month. startDay is assumed to be in [1, 28]; policy validation clamps it
// upstream.
func KeyFor(date time.Time, startDay int) Key {
	y, m, _ := date.Date()
	if date.Day() < startDay {
		prev := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		y, m = prev.Year(), prev.Month()
	}
	return Key(fmt.Sprintf("%04d_%02d", y, int(m)))
}

// Range returns the inclusive [start, end] day range of the salary month:
// startDay of month M through startDay-1 of month M+1. Both bounds are UTC
// midnights.
func (k Key) Range(startDay int) (time.Time, time.Time) {
	year, month := k.yearMonth()
	start := time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// SundaysIn enumerates every Sunday in the inclusive [start, end] range in
// ascending order.
func SundaysIn(start, end time.Time) []time.Time {
	var sundays []time.Time
	d := Day(start)
	// Jump to the first Sunday instead of walking day by day.
	if wd := d.Weekday(); wd != time.Sunday {
		d = d.AddDate(0, 0, 7-int(wd))
	}
	for !d.After(Day(end)) {
		sundays = append(sundays, d)
		d = d.AddDate(0, 0, 7)
	}
	return sundays
}

// Day truncates t to its calendar day as a UTC midnight. Records and
// holidays are keyed by this value.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a boundary "YYYY-MM-DD" date string.
func ParseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// FormatDay renders a calendar day in the boundary format.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}
