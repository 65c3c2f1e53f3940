package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
)

func strPtr(s string) *string { return &s }

func TestAttendanceRepository_ListByDate_OrderedByEmployeeCode(t *testing.T) {
	t.Parallel()

	repo := NewAttendanceRepository()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// Inserted out of order; UIDs deliberately sort opposite to codes.
	for _, rec := range []attendance.Record{
		{EmployeeUID: "a-uid", Date: day, Status: attendance.StatusPresent, EmployeeCode: strPtr("EMP03")},
		{EmployeeUID: "c-uid", Date: day, Status: attendance.StatusPresent, EmployeeCode: strPtr("EMP01")},
		{EmployeeUID: "b-uid", Date: day, Status: attendance.StatusLeave, EmployeeCode: strPtr("EMP02")},
	} {
		_, created, err := repo.CreateIfAbsent(context.Background(), rec)
		require.NoError(t, err)
		require.True(t, created)
	}

	records, err := repo.ListByDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "EMP01", *records[0].EmployeeCode)
	assert.Equal(t, "EMP02", *records[1].EmployeeCode)
	assert.Equal(t, "EMP03", *records[2].EmployeeCode)
}

func TestAttendanceRepository_SetClockOut_PresenceOnly(t *testing.T) {
	t.Parallel()

	repo := NewAttendanceRepository()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	out := day.Add(15*time.Hour + 30*time.Minute)

	_, created, err := repo.CreateIfAbsent(context.Background(), attendance.Record{
		EmployeeUID: "emp-uid",
		Date:        day,
		Status:      attendance.StatusLeave,
		LeaveReason: strPtr("family emergency"),
	})
	require.NoError(t, err)
	require.True(t, created)

	rec, ok, err := repo.SetClockOut(context.Background(), "emp-uid", day, out, 2.5, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusLeave, rec.Status)
	assert.Nil(t, rec.OutTime)
	assert.Zero(t, rec.EarlyLeaveHours)
}
