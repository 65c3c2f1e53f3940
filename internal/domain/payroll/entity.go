package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is derived per employee per salary month from attendance records,
// holidays and the employee's base salary. It is never the source of truth;
// regenerating it from the same inputs yields the same figures.
type Report struct {
	EmployeeUID  string `json:"employee_uid"`
	EmployeeName string `json:"employee_name"`
	EmployeeCode string `json:"employee_code"`
	MonthKey     string `json:"month_key"`
	MonthStart   string `json:"month_start"`
	MonthEnd     string `json:"month_end"`

	// Day-count buckets. Every date in the window lands in exactly one.
	PresentDays  int `json:"present_days"` // includes late and half-day
	LeaveDays    int `json:"leave_days"`
	OffDays      int `json:"off_days"`
	HolidayDays  int `json:"holiday_days"`
	UnmarkedDays int `json:"unmarked_days"`

	LateCount       int     `json:"late_count"`
	HalfDayCount    int     `json:"half_day_count"`
	EarlyLeaveHours float64 `json:"early_leave_hours"`
	OvertimeHours   float64 `json:"overtime_hours"` // approved overtime only

	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	PerDaySalary  decimal.Decimal `json:"per_day_salary"`
	PerHourSalary decimal.Decimal `json:"per_hour_salary"`

	OffDeduction        decimal.Decimal `json:"off_deduction"`
	LateDeduction       decimal.Decimal `json:"late_deduction"`
	HalfDayDeduction    decimal.Decimal `json:"half_day_deduction"`
	EarlyLeaveDeduction decimal.Decimal `json:"early_leave_deduction"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetSalary           decimal.Decimal `json:"net_salary"`

	Currency string `json:"currency"`
	Paid     bool   `json:"paid"`
}

// MonthlyReport rolls per-employee reports into month-wide totals. Failures
// holds per-employee errors from a partially successful generation.
type MonthlyReport struct {
	MonthKey        string          `json:"month_key"`
	Reports         []Report        `json:"reports"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalPayout     decimal.Decimal `json:"total_payout"`
	Failures        []string        `json:"failures,omitempty"`
}

// Payment is an append-only ledger entry: its existence for
// (EmployeeUID, MonthKey) is what "already paid" means. Never mutated.
type Payment struct {
	ID          string          `json:"id"`
	EmployeeUID string          `json:"employee_uid"`
	MonthKey    string          `json:"month_key"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
