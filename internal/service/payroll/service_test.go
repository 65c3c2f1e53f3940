package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/employee"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/holiday"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/payroll"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/repository/memory"
	policyService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/policy"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func adminContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_uid": "admin-uid",
		"is_admin":     true,
		"type":         "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type payrollFixture struct {
	svc            *PayrollServiceImpl
	attendanceRepo *memory.AttendanceRepository
	holidayRepo    *memory.HolidayRepository
	employeeRepo   *memory.EmployeeRepository
	paymentRepo    *memory.PaymentRepository
	employeeUID    string
}

func newPayroll(t *testing.T, now time.Time) payrollFixture {
	t.Helper()

	employeeRepo := memory.NewEmployeeRepository()
	emp, err := employeeRepo.Create(context.Background(), employee.Employee{
		FullName:     "Ayesha Khan",
		EmployeeCode: "EMP01",
		BaseSalary:   decimal.NewFromInt(30000),
	})
	require.NoError(t, err)

	attendanceRepo := memory.NewAttendanceRepository()
	holidayRepo := memory.NewHolidayRepository()
	paymentRepo := memory.NewPaymentRepository()
	svc := &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		employeeRepo:   employeeRepo,
		paymentRepo:    paymentRepo,
		policyService:  policyService.NewPolicyService(memory.NewPolicyRepository()),
		Now:            func() time.Time { return now },
	}
	return payrollFixture{
		svc:            svc,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		employeeRepo:   employeeRepo,
		paymentRepo:    paymentRepo,
		employeeUID:    emp.UID,
	}
}

func (f payrollFixture) upsert(t *testing.T, rec attendance.Record) {
	t.Helper()
	rec.EmployeeUID = f.employeeUID
	rec.MarkedBy = attendance.MarkedBySelf
	if rec.OvertimeStatus == "" {
		rec.OvertimeStatus = attendance.OvertimeApproved
	}
	_, err := f.attendanceRepo.Upsert(context.Background(), rec)
	require.NoError(t, err)
}

func TestPayrollService_Report_DeductionMath(t *testing.T) {
	t.Parallel()
	// 30000 base: per-day 1000.00, per-hour 125.00. Two offs at 1.2x give
	// 2400, four lates give one half-day rate 500, one early-leave hour
	// gives 125. Net 30000 - 3025 = 26975.
	f := newPayroll(t, day(2025, 3, 20))

	f.upsert(t, attendance.Record{Date: day(2025, 3, 10), Status: attendance.StatusLate, LateMinutes: 20})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 11), Status: attendance.StatusLate, LateMinutes: 25})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 12), Status: attendance.StatusLate, LateMinutes: 30})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 13), Status: attendance.StatusLate, LateMinutes: 35})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 14), Status: attendance.StatusPresent, EarlyLeaveHours: 1.0})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 17), Status: attendance.StatusOff})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 18), Status: attendance.StatusOff})

	report, err := f.svc.Report(context.Background(), f.employeeUID, "2025_03")
	require.NoError(t, err)

	assert.Equal(t, 5, report.PresentDays)
	assert.Equal(t, 4, report.LateCount)
	assert.Equal(t, 2, report.OffDays)
	assert.Equal(t, 0, report.HalfDayCount)
	assert.Equal(t, 1.0, report.EarlyLeaveHours)

	assert.True(t, report.PerDaySalary.Equal(decimal.RequireFromString("1000")), report.PerDaySalary.String())
	assert.True(t, report.PerHourSalary.Equal(decimal.RequireFromString("125")), report.PerHourSalary.String())
	assert.True(t, report.OffDeduction.Equal(decimal.RequireFromString("2400")), report.OffDeduction.String())
	assert.True(t, report.LateDeduction.Equal(decimal.RequireFromString("500")), report.LateDeduction.String())
	assert.True(t, report.EarlyLeaveDeduction.Equal(decimal.RequireFromString("125")), report.EarlyLeaveDeduction.String())
	assert.True(t, report.TotalDeductions.Equal(decimal.RequireFromString("3025")), report.TotalDeductions.String())
	assert.True(t, report.NetSalary.Equal(decimal.RequireFromString("26975")), report.NetSalary.String())
	assert.False(t, report.Paid)
}

func TestPayrollService_Report_LateDeductionSteps(t *testing.T) {
	t.Parallel()
	// Two lates deduct nothing; the penalty lands on every third.
	f := newPayroll(t, day(2025, 3, 20))
	f.upsert(t, attendance.Record{Date: day(2025, 3, 10), Status: attendance.StatusLate, LateMinutes: 20})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 11), Status: attendance.StatusLate, LateMinutes: 20})

	report, err := f.svc.Report(context.Background(), f.employeeUID, "2025_03")
	require.NoError(t, err)
	assert.True(t, report.LateDeduction.IsZero(), report.LateDeduction.String())
}

func TestPayrollService_Report_HolidaysAreNotUnmarked(t *testing.T) {
	t.Parallel()
	// Window opens 2025-03-06. With "today" at 03-08 and a holiday on 03-07,
	// only the 6th and 8th count as unmarked.
	f := newPayroll(t, day(2025, 3, 8))

	reason := "Founding day"
	created, err := f.holidayRepo.CreateIfAbsent(context.Background(), holiday.Holiday{Date: day(2025, 3, 7), Reason: &reason})
	require.NoError(t, err)
	require.True(t, created)

	report, err := f.svc.Report(context.Background(), f.employeeUID, "2025_03")
	require.NoError(t, err)
	assert.Equal(t, 1, report.HolidayDays)
	assert.Equal(t, 2, report.UnmarkedDays)
}

func TestPayrollService_Report_OnlyApprovedOvertimeCounts(t *testing.T) {
	t.Parallel()
	f := newPayroll(t, day(2025, 3, 20))
	f.upsert(t, attendance.Record{Date: day(2025, 3, 10), Status: attendance.StatusPresent, OvertimeHours: 2.0, OvertimeStatus: attendance.OvertimeApproved})
	f.upsert(t, attendance.Record{Date: day(2025, 3, 11), Status: attendance.StatusPresent, OvertimeHours: 3.0, OvertimeStatus: attendance.OvertimeRejected})

	report, err := f.svc.Report(context.Background(), f.employeeUID, "2025_03")
	require.NoError(t, err)
	assert.Equal(t, 2.0, report.OvertimeHours)
}

func TestPayrollService_Report_UnknownEmployee(t *testing.T) {
	t.Parallel()
	f := newPayroll(t, day(2025, 3, 20))

	_, err := f.svc.Report(context.Background(), "no-such-uid", "2025_03")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_GenerateMonthlyReport(t *testing.T) {
	t.Parallel()
	f := newPayroll(t, day(2025, 3, 20))

	_, err := f.employeeRepo.Create(context.Background(), employee.Employee{
		FullName:     "Bilal Ahmed",
		EmployeeCode: "EMP02",
		BaseSalary:   decimal.NewFromInt(60000),
	})
	require.NoError(t, err)

	monthly, err := f.svc.GenerateMonthlyReport(context.Background(), "2025_03")
	require.NoError(t, err)
	require.Len(t, monthly.Reports, 2)
	assert.Empty(t, monthly.Failures)
	assert.True(t, monthly.TotalPayout.Equal(decimal.RequireFromString("90000")), monthly.TotalPayout.String())
}

func TestPayrollService_RecordPayment_DefaultsToNetSalary(t *testing.T) {
	t.Parallel()
	f := newPayroll(t, day(2025, 3, 20))
	f.upsert(t, attendance.Record{Date: day(2025, 3, 17), Status: attendance.StatusOff})
	ctx := adminContext(t)

	payment, err := f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		EmployeeUID: f.employeeUID,
		MonthKey:    "2025_03",
	})
	require.NoError(t, err)
	// 30000 - 1200 off deduction.
	assert.True(t, payment.Amount.Equal(decimal.RequireFromString("28800")), payment.Amount.String())
	assert.Equal(t, "admin-uid", payment.PaidBy)

	report, err := f.svc.Report(context.Background(), f.employeeUID, "2025_03")
	require.NoError(t, err)
	assert.True(t, report.Paid)
}

func TestPayrollService_RecordPayment_DuplicateRejected(t *testing.T) {
	t.Parallel()
	f := newPayroll(t, day(2025, 3, 20))
	ctx := adminContext(t)

	amount := decimal.NewFromInt(25000)
	_, err := f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		EmployeeUID: f.employeeUID,
		MonthKey:    "2025_03",
		Amount:      &amount,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(ctx, payroll.RecordPaymentRequest{
		EmployeeUID: f.employeeUID,
		MonthKey:    "2025_03",
		Amount:      &amount,
	})
	assert.ErrorIs(t, err, payroll.ErrAlreadyPaid)

	payments, err := f.svc.PaymentsFor(context.Background(), "2025_03")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
