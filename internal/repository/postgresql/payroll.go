package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/payroll"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type paymentRepository struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepository{db: db}
}

// CreatePayment implements payroll.PaymentRepository. The unique constraint
// on (employee_uid, month_key) makes "already paid" atomic; the ledger is
// append-only so there is no update path at all.
func (r *paymentRepository) CreatePayment(ctx context.Context, p payroll.Payment) (payroll.Payment, bool, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO salary_payments (id, employee_uid, month_key, amount, paid_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_uid, month_key) DO NOTHING
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, p.ID, p.EmployeeUID, p.MonthKey, p.Amount, p.PaidBy, p.Notes).
		Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payment{}, false, nil
		}
		return payroll.Payment{}, false, fmt.Errorf("failed to create salary payment: %w", database.MapError(err))
	}

	return p, true, nil
}

// GetPayment implements payroll.PaymentRepository.
func (r *paymentRepository) GetPayment(ctx context.Context, employeeUID string, monthKey string) (*payroll.Payment, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_uid, month_key, amount, paid_by, notes, created_at
		FROM salary_payments
		WHERE employee_uid = $1 AND month_key = $2
	`

	var p payroll.Payment
	err := q.QueryRow(ctx, query, employeeUID, monthKey).Scan(
		&p.ID, &p.EmployeeUID, &p.MonthKey, &p.Amount, &p.PaidBy, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get salary payment: %w", database.MapError(err))
	}
	return &p, nil
}

// ListPayments implements payroll.PaymentRepository.
func (r *paymentRepository) ListPayments(ctx context.Context, monthKey string) ([]payroll.Payment, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_uid, month_key, amount, paid_by, notes, created_at
		FROM salary_payments
		WHERE month_key = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary payments: %w", database.MapError(err))
	}
	defer rows.Close()

	var payments []payroll.Payment
	for rows.Next() {
		var p payroll.Payment
		if err := rows.Scan(&p.ID, &p.EmployeeUID, &p.MonthKey, &p.Amount, &p.PaidBy, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
