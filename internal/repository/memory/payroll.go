package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/payroll"
	"github.com/google/uuid"
)

type paymentKey struct {
	EmployeeUID string
	MonthKey    string
}

type PaymentRepository struct {
	mu       sync.Mutex
	payments map[paymentKey]payroll.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[paymentKey]payroll.Payment)}
}

func (m *PaymentRepository) CreatePayment(_ context.Context, p payroll.Payment) (payroll.Payment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := paymentKey{EmployeeUID: p.EmployeeUID, MonthKey: p.MonthKey}
	if _, exists := m.payments[k]; exists {
		return payroll.Payment{}, false, nil
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	m.payments[k] = p
	return p, true, nil
}

func (m *PaymentRepository) GetPayment(_ context.Context, employeeUID string, monthKey string) (*payroll.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, exists := m.payments[paymentKey{EmployeeUID: employeeUID, MonthKey: monthKey}]; exists {
		return &p, nil
	}
	return nil, nil
}

func (m *PaymentRepository) ListPayments(_ context.Context, monthKey string) ([]payroll.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var payments []payroll.Payment
	for k, p := range m.payments {
		if k.MonthKey == monthKey {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})
	return payments, nil
}
