package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/employee"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/repository/memory"
	policyService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/policy"
)

func authedContext(t *testing.T, employeeUID string, isAdmin bool) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_uid": employeeUID,
		"is_admin":     isAdmin,
		"type":         "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type ledgerFixture struct {
	svc            *AttendanceServiceImpl
	attendanceRepo *memory.AttendanceRepository
	policyRepo     *memory.PolicyRepository
	employeeUID    string
}

func newLedger(t *testing.T, now time.Time) ledgerFixture {
	t.Helper()

	employeeRepo := memory.NewEmployeeRepository()
	emp, err := employeeRepo.Create(context.Background(), employee.Employee{
		FullName:     "Ayesha Khan",
		EmployeeCode: "EMP01",
		BaseSalary:   decimal.NewFromInt(30000),
	})
	require.NoError(t, err)

	attendanceRepo := memory.NewAttendanceRepository()
	policyRepo := memory.NewPolicyRepository()
	svc := &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policyService:  policyService.NewPolicyService(policyRepo),
		Now:            func() time.Time { return now },
	}
	return ledgerFixture{
		svc:            svc,
		attendanceRepo: attendanceRepo,
		policyRepo:     policyRepo,
		employeeUID:    emp.UID,
	}
}

func TestAttendanceService_Mark_OnTime(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	ctx := authedContext(t, f.employeeUID, false)

	rec, err := f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, 0, rec.LateMinutes)
	assert.Equal(t, "2025-03-10", rec.Date)
	assert.Equal(t, attendance.MarkedBySelf, rec.MarkedBy)
	require.NotNil(t, rec.InTime)
	assert.Nil(t, rec.OutTime)
}

func TestAttendanceService_Mark_LateAndHalfDay(t *testing.T) {
	t.Parallel()

	late := newLedger(t, at(10, 45))
	rec, err := late.svc.Mark(authedContext(t, late.employeeUID, false), attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, 30, rec.LateMinutes)

	half := newLedger(t, at(11, 30))
	rec, err = half.svc.Mark(authedContext(t, half.employeeUID, false), attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
	assert.Equal(t, 75, rec.LateMinutes)
}

func TestAttendanceService_Mark_SecondMarkSameDayRejected(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	ctx := authedContext(t, f.employeeUID, false)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)

	// Same day again, even with a different shape.
	reason := "family emergency"
	_, err = f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusLeave, LeaveReason: &reason})
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
}

func TestAttendanceService_Mark_ConcurrentSingleWinner(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	ctx := authedContext(t, f.employeeUID, false)

	const attempts = 16
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusPresent})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestAttendanceService_Mark_LeaveRequiresReason(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))

	_, err := f.svc.Mark(authedContext(t, f.employeeUID, false), attendance.MarkRequest{Status: attendance.StatusLeave})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "leave_reason")
}

func TestAttendanceService_EarlyOff_WithoutRecord(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(15, 30))

	_, err := f.svc.Mark(authedContext(t, f.employeeUID, false), attendance.MarkRequest{IsEarlyOff: true})
	assert.ErrorIs(t, err, attendance.ErrNotMarkedYet)
}

func TestAttendanceService_EarlyOff_SettlesOnce(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	ctx := authedContext(t, f.employeeUID, false)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)

	f.svc.Now = func() time.Time { return at(15, 30) }
	rec, err := f.svc.Mark(ctx, attendance.MarkRequest{IsEarlyOff: true})
	require.NoError(t, err)
	require.NotNil(t, rec.OutTime)
	firstOut := *rec.OutTime
	assert.Equal(t, 2.5, rec.EarlyLeaveHours)

	// A later early-off does not move the settled out time.
	f.svc.Now = func() time.Time { return at(17, 0) }
	rec, err = f.svc.Mark(ctx, attendance.MarkRequest{IsEarlyOff: true})
	require.NoError(t, err)
	require.NotNil(t, rec.OutTime)
	assert.Equal(t, firstOut, *rec.OutTime)
	assert.Equal(t, 2.5, rec.EarlyLeaveHours)
}

func TestAttendanceService_EarlyOff_LeaveDayRejected(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	ctx := authedContext(t, f.employeeUID, false)

	reason := "family emergency"
	_, err := f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusLeave, LeaveReason: &reason})
	require.NoError(t, err)

	// A leave record carries no clock-in, so there is nothing to close out.
	f.svc.Now = func() time.Time { return at(15, 30) }
	_, err = f.svc.Mark(ctx, attendance.MarkRequest{IsEarlyOff: true})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	stored, err := f.attendanceRepo.GetByEmployeeAndDate(context.Background(), f.employeeUID, at(0, 0))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, attendance.StatusLeave, stored.Status)
	assert.Nil(t, stored.OutTime)
	assert.Zero(t, stored.EarlyLeaveHours)
}

func TestAttendanceService_AdminUpsert_OverwritesExisting(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	employeeCtx := authedContext(t, f.employeeUID, false)
	adminCtx := authedContext(t, "admin-uid", true)

	_, err := f.svc.Mark(employeeCtx, attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)

	in := at(10, 45).Format(time.RFC3339)
	out := at(18, 0).Format(time.RFC3339)
	rec, err := f.svc.AdminUpsert(adminCtx, attendance.AdminUpsertRequest{
		EmployeeUID: f.employeeUID,
		Date:        "2025-03-10",
		Mode:        attendance.ModeAttendance,
		InTime:      &in,
		OutTime:     &out,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, 30, rec.LateMinutes)
	assert.Equal(t, "admin-uid", rec.MarkedBy)

	stored, err := f.attendanceRepo.GetByEmployeeAndDate(context.Background(), f.employeeUID, at(0, 0))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, attendance.StatusLate, stored.Status)
}

func TestAttendanceService_AdminUpsert_PastDateNeedsOutTime(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	adminCtx := authedContext(t, "admin-uid", true)

	in := at(10, 5).AddDate(0, 0, -3).Format(time.RFC3339)
	_, err := f.svc.AdminUpsert(adminCtx, attendance.AdminUpsertRequest{
		EmployeeUID: f.employeeUID,
		Date:        "2025-03-07",
		Mode:        attendance.ModeAttendance,
		InTime:      &in,
	})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "out_time")

	// The rule follows the service clock, not the wall clock: the pinned
	// today may stay open.
	in = at(10, 5).Format(time.RFC3339)
	_, err = f.svc.AdminUpsert(adminCtx, attendance.AdminUpsertRequest{
		EmployeeUID: f.employeeUID,
		Date:        "2025-03-10",
		Mode:        attendance.ModeAttendance,
		InTime:      &in,
	})
	assert.NoError(t, err)
}

func TestAttendanceService_Recompute_ReappliesPolicy(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 45))
	ctx := authedContext(t, f.employeeUID, false)

	rec, err := f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)
	require.Equal(t, attendance.StatusLate, rec.Status)

	// Widen the grace buffer past the recorded arrival, then replay.
	buffer := 60
	_, err = f.svc.policyService.Update(ctx, policy.UpdatePolicyRequest{LateMarkAfterMinutes: &buffer})
	require.NoError(t, err)

	result, err := f.svc.Recompute(ctx, "2025_03")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)

	stored, err := f.attendanceRepo.GetByEmployeeAndDate(context.Background(), f.employeeUID, at(0, 0))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
	assert.Equal(t, 0, stored.LateMinutes)

	// Replaying with nothing changed touches nothing.
	result, err = f.svc.Recompute(ctx, "2025_03")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
}

func TestAttendanceService_Recompute_InvalidMonthKey(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))

	_, err := f.svc.Recompute(context.Background(), "2025-03")
	assert.Error(t, err)
}

func TestAttendanceService_DecideOvertime(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	ctx := authedContext(t, f.employeeUID, false)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)

	note := "not requested in advance"
	rec, err := f.svc.DecideOvertime(authedContext(t, "admin-uid", true), attendance.OvertimeDecisionRequest{
		EmployeeUID: f.employeeUID,
		Date:        "2025-03-10",
		Decision:    "rejected",
		Note:        &note,
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.OvertimeRejected), rec.OvertimeStatus)

	_, err = f.svc.DecideOvertime(authedContext(t, "admin-uid", true), attendance.OvertimeDecisionRequest{
		EmployeeUID: f.employeeUID,
		Date:        "2025-03-11",
		Decision:    "approved",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAttendanceService_QueryByDate_SingleEmployee(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))
	ctx := authedContext(t, f.employeeUID, false)

	_, err := f.svc.Mark(ctx, attendance.MarkRequest{Status: attendance.StatusPresent})
	require.NoError(t, err)

	records, err := f.svc.QueryByDate(context.Background(), "2025-03-10", &f.employeeUID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, f.employeeUID, records[0].EmployeeUID)

	// An absent day is an empty result, not an error.
	records, err = f.svc.QueryByDate(context.Background(), "2025-03-11", &f.employeeUID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAttendanceService_MonthlyRecords_UnknownEmployee(t *testing.T) {
	t.Parallel()
	f := newLedger(t, at(10, 5))

	_, err := f.svc.MonthlyRecords(context.Background(), "no-such-uid", "2025_03")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
