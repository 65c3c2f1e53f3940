package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	t.Parallel()
	pol := policy.Default() // 10:00-18:00, 15 min buffer, half-day at 60

	tests := []struct {
		name        string
		in          time.Time
		wantStatus  attendance.Status
		wantLateMin int
	}{
		{"before office start", at(9, 30), attendance.StatusPresent, 0},
		{"exactly office start", at(10, 0), attendance.StatusPresent, 0},
		{"inside grace buffer", at(10, 10), attendance.StatusPresent, 0},
		{"exactly at threshold", at(10, 15), attendance.StatusPresent, 0},
		{"one minute past threshold", at(10, 16), attendance.StatusLate, 1},
		{"well late", at(10, 45), attendance.StatusLate, 30},
		{"just under half-day cutover", at(11, 14), attendance.StatusLate, 59},
		{"exactly half-day cutover", at(11, 15), attendance.StatusHalfDay, 60},
		{"deep into half-day", at(13, 0), attendance.StatusHalfDay, 165},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, lateMin := Classify(tt.in, pol)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantLateMin, lateMin)
		})
	}
}

func TestClassify_HalfDayCutoverFollowsPolicy(t *testing.T) {
	t.Parallel()
	pol := policy.Default()
	pol.HalfDayAfterMinutes = 30

	status, lateMin := Classify(at(10, 46), pol)
	assert.Equal(t, attendance.StatusHalfDay, status)
	assert.Equal(t, 31, lateMin)
}

func TestEarlyLeaveHours(t *testing.T) {
	t.Parallel()
	pol := policy.Default() // office ends 18:00

	tests := []struct {
		name string
		out  time.Time
		want float64
	}{
		{"at office end", at(18, 0), 0},
		{"after office end", at(18, 30), 0},
		{"under a quarter hour short", at(17, 50), 0},
		{"rounds up to half hour", at(17, 45), 0.5},
		{"ninety minutes short", at(16, 30), 1.5},
		{"monotonic near rounding edge", at(16, 44), 1.5},
		{"two and a half hours short", at(15, 30), 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EarlyLeaveHours(tt.out, pol))
		})
	}
}

func TestOvertimeHours(t *testing.T) {
	t.Parallel()
	pol := policy.Default()

	assert.Equal(t, 0.0, OvertimeHours(at(18, 0), pol))
	assert.Equal(t, 0.0, OvertimeHours(at(17, 0), pol))
	assert.Equal(t, 0.5, OvertimeHours(at(18, 20), pol))
	assert.Equal(t, 1.0, OvertimeHours(at(19, 0), pol))
	assert.Equal(t, 2.5, OvertimeHours(at(20, 30), pol))
}
