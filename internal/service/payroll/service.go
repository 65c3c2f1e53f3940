package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/auth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/employee"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/holiday"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/payroll"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/salarymonth"
)

var (
	two           = decimal.NewFromInt(2)
	offMultiplier = decimal.NewFromFloat(1.2)
)

// PayrollServiceImpl derives reports from the attendance ledger and holiday
// calendar on demand. Reports are never stored; only payments are.
type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    holiday.HolidayRepository
	employeeRepo   employee.EmployeeRepository
	paymentRepo    payroll.PaymentRepository
	policyService  policy.PolicyService
	Now            func() time.Time
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	paymentRepo payroll.PaymentRepository,
	policyService policy.PolicyService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		employeeRepo:   employeeRepo,
		paymentRepo:    paymentRepo,
		policyService:  policyService,
		Now:            time.Now,
	}
}

func (s *PayrollServiceImpl) Report(ctx context.Context, employeeUID string, monthKey string) (payroll.Report, error) {
	key, err := salarymonth.Parse(monthKey)
	if err != nil {
		return payroll.Report{}, err
	}

	emp, err := s.employeeRepo.GetByUID(ctx, employeeUID)
	if err != nil {
		return payroll.Report{}, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return payroll.Report{}, err
	}
	return s.reportFor(ctx, emp, key, pol)
}

func (s *PayrollServiceImpl) reportFor(ctx context.Context, emp employee.Employee, key salarymonth.Key, pol policy.Policy) (payroll.Report, error) {
	start, end := key.Range(pol.SalaryStartDay)

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.UID, start, end)
	if err != nil {
		return payroll.Report{}, err
	}
	holidays, err := s.holidayRepo.ListByRange(ctx, start, end)
	if err != nil {
		return payroll.Report{}, err
	}

	recordByDay := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		recordByDay[salarymonth.FormatDay(rec.Date)] = rec
	}
	holidayDays := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayDays[salarymonth.FormatDay(h.Date)] = true
	}

	report := payroll.Report{
		EmployeeUID:  emp.UID,
		EmployeeName: emp.FullName,
		EmployeeCode: emp.EmployeeCode,
		MonthKey:     string(key),
		MonthStart:   salarymonth.FormatDay(start),
		MonthEnd:     salarymonth.FormatDay(end),
		Currency:     pol.Currency,
	}

	today := salarymonth.Day(s.Now())
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dayKey := salarymonth.FormatDay(d)
		rec, marked := recordByDay[dayKey]
		if !marked {
			// A holiday needs no record; every other elapsed day without
			// one is unmarked. Future days are not counted against anyone.
			if holidayDays[dayKey] {
				report.HolidayDays++
			} else if !d.After(today) {
				report.UnmarkedDays++
			}
			continue
		}

		switch {
		case rec.Status.IsPresence():
			report.PresentDays++
			if rec.Status == attendance.StatusLate {
				report.LateCount++
			}
			if rec.Status == attendance.StatusHalfDay {
				report.HalfDayCount++
			}
			report.EarlyLeaveHours += rec.EarlyLeaveHours
			if rec.OvertimeStatus == attendance.OvertimeApproved {
				report.OvertimeHours += rec.OvertimeHours
			}
		case rec.Status == attendance.StatusLeave:
			report.LeaveDays++
		case rec.Status == attendance.StatusOff:
			report.OffDays++
		case rec.Status == attendance.StatusHoliday:
			report.HolidayDays++
		}
	}

	report.MonthlySalary = emp.BaseSalary
	report.PerDaySalary = emp.BaseSalary.Div(decimal.NewFromInt(int64(pol.SalaryDivisorDays))).Round(2)
	report.PerHourSalary = report.PerDaySalary.Div(decimal.NewFromInt(int64(pol.WorkHoursPerDay))).Round(2)

	halfDayRate := report.PerDaySalary.Div(two)
	report.OffDeduction = report.PerDaySalary.
		Mul(decimal.NewFromInt(int64(report.OffDays))).
		Mul(offMultiplier).Round(2)
	report.LateDeduction = decimal.NewFromInt(int64(report.LateCount / 3)).
		Mul(halfDayRate).Round(2)
	report.HalfDayDeduction = decimal.NewFromInt(int64(report.HalfDayCount)).
		Mul(halfDayRate).Round(2)
	report.EarlyLeaveDeduction = decimal.NewFromFloat(report.EarlyLeaveHours).
		Mul(report.PerHourSalary).Round(2)
	report.TotalDeductions = report.OffDeduction.
		Add(report.LateDeduction).
		Add(report.HalfDayDeduction).
		Add(report.EarlyLeaveDeduction).Round(2)
	report.NetSalary = report.MonthlySalary.Sub(report.TotalDeductions).Round(2)

	payment, err := s.paymentRepo.GetPayment(ctx, emp.UID, string(key))
	if err != nil {
		return payroll.Report{}, err
	}
	report.Paid = payment != nil

	return report, nil
}

func (s *PayrollServiceImpl) GenerateMonthlyReport(ctx context.Context, monthKey string) (payroll.MonthlyReport, error) {
	key, err := salarymonth.Parse(monthKey)
	if err != nil {
		return payroll.MonthlyReport{}, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return payroll.MonthlyReport{}, err
	}
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return payroll.MonthlyReport{}, err
	}

	monthly := payroll.MonthlyReport{
		MonthKey:        string(key),
		Reports:         make([]payroll.Report, 0, len(employees)),
		TotalDeductions: decimal.Zero,
		TotalPayout:     decimal.Zero,
	}
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return monthly, err
		}
		report, err := s.reportFor(ctx, emp, key, pol)
		if err != nil {
			monthly.Failures = append(monthly.Failures, fmt.Sprintf("%s: %v", emp.UID, err))
			continue
		}
		monthly.Reports = append(monthly.Reports, report)
		monthly.TotalDeductions = monthly.TotalDeductions.Add(report.TotalDeductions)
		monthly.TotalPayout = monthly.TotalPayout.Add(report.NetSalary)
	}
	return monthly, nil
}

func (s *PayrollServiceImpl) RecordPayment(ctx context.Context, req payroll.RecordPaymentRequest) (payroll.Payment, error) {
	if err := req.Validate(); err != nil {
		return payroll.Payment{}, err
	}
	key, err := salarymonth.Parse(req.MonthKey)
	if err != nil {
		return payroll.Payment{}, err
	}

	paidBy, err := actorFromContext(ctx)
	if err != nil {
		return payroll.Payment{}, err
	}

	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	} else {
		report, err := s.Report(ctx, req.EmployeeUID, string(key))
		if err != nil {
			return payroll.Payment{}, err
		}
		amount = report.NetSalary
	}

	payment := payroll.Payment{
		EmployeeUID: req.EmployeeUID,
		MonthKey:    string(key),
		Amount:      amount,
		PaidBy:      paidBy,
		Notes:       req.Notes,
	}
	created, ok, err := s.paymentRepo.CreatePayment(ctx, payment)
	if err != nil {
		return payroll.Payment{}, err
	}
	if !ok {
		return payroll.Payment{}, payroll.ErrAlreadyPaid
	}
	return created, nil
}

func (s *PayrollServiceImpl) PaymentsFor(ctx context.Context, monthKey string) ([]payroll.Payment, error) {
	key, err := salarymonth.Parse(monthKey)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListPayments(ctx, string(key))
}

func actorFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	employeeUID, ok := claims["employee_uid"].(string)
	if !ok || employeeUID == "" {
		return "", auth.ErrInvalidToken
	}
	return employeeUID, nil
}
