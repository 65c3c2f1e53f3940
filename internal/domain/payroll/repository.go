package payroll

import "context"

// PaymentRepository persists the append-only salary payment ledger.
type PaymentRepository interface {
	// CreatePayment inserts unless a payment already exists for the
	// employee and month; created=false signals the duplicate.
	CreatePayment(ctx context.Context, p Payment) (Payment, bool, error)

	// GetPayment returns nil when the month is unpaid for the employee.
	GetPayment(ctx context.Context, employeeUID string, monthKey string) (*Payment, error)

	// ListPayments returns a month's payments ascending by creation time.
	ListPayments(ctx context.Context, monthKey string) ([]Payment, error)
}

// PayrollService folds a salary month of attendance into deductions and net
// salary.
type PayrollService interface {
	// Report computes one employee's salary report for a month.
	Report(ctx context.Context, employeeUID string, monthKey string) (Report, error)

	// GenerateMonthlyReport runs Report for every employee, omitting ones
	// that disappear mid-run and collecting other failures.
	GenerateMonthlyReport(ctx context.Context, monthKey string) (MonthlyReport, error)

	// RecordPayment appends to the payment ledger; the amount defaults to
	// the computed net salary when the request leaves it unset.
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (Payment, error)

	// PaymentsFor lists a month's payments.
	PaymentsFor(ctx context.Context, monthKey string) ([]Payment, error)
}
