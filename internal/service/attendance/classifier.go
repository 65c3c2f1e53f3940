package attendance

import (
	"math"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
)

// The classifier is pure: status and every derived figure are functions of
// the clock times and the policy alone. Recompute relies on this to replay
// a whole month under a different policy snapshot.

// Classify maps a clock-in instant to an attendance status and late
// minutes. An arrival within the grace buffer past office start is present;
// beyond it the mark is late, and once lateness reaches the half-day cutover
// the day degrades to half-day.
func Classify(in time.Time, p policy.Policy) (attendance.Status, int) {
	inMinutes := in.Hour()*60 + in.Minute()
	threshold := p.OfficeStartMinutes() + p.LateMarkAfterMinutes

	lateMinutes := inMinutes - threshold
	if lateMinutes <= 0 {
		return attendance.StatusPresent, 0
	}
	if p.HalfDayAfterMinutes > 0 && lateMinutes >= p.HalfDayAfterMinutes {
		return attendance.StatusHalfDay, lateMinutes
	}
	return attendance.StatusLate, lateMinutes
}

// EarlyLeaveHours returns the shortfall before office end rounded to the
// nearest half hour, in hours. Leaving at or after office end yields 0.
func EarlyLeaveHours(out time.Time, p policy.Policy) float64 {
	outMinutes := out.Hour()*60 + out.Minute()
	shortfall := p.OfficeEndMinutes() - outMinutes
	if shortfall <= 0 {
		return 0
	}
	return math.Round(float64(shortfall)/30.0) / 2
}

// OvertimeHours is the symmetric rule: excess past office end rounded to
// the nearest half hour.
func OvertimeHours(out time.Time, p policy.Policy) float64 {
	outMinutes := out.Hour()*60 + out.Minute()
	excess := outMinutes - p.OfficeEndMinutes()
	if excess <= 0 {
		return 0
	}
	return math.Round(float64(excess)/30.0) / 2
}
