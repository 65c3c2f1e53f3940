package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/employee"
	"github.com/google/uuid"
)

type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee // keyed by UID
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

func (m *EmployeeRepository) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}

	if e.UID == "" {
		e.UID = uuid.NewString()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	m.employees[e.UID] = e
	return e, nil
}

func (m *EmployeeRepository) GetByUID(_ context.Context, uid string) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, exists := m.employees[uid]; exists {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *EmployeeRepository) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *EmployeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	employees := make([]employee.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].EmployeeCode < employees[j].EmployeeCode
	})
	return employees, nil
}

func (m *EmployeeRepository) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.employees[e.UID]
	if !exists {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.EmployeeCode = existing.EmployeeCode
	e.PasswordHash = existing.PasswordHash
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()
	m.employees[e.UID] = e
	return e, nil
}

func (m *EmployeeRepository) Delete(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.employees[uid]; !exists {
		return employee.ErrEmployeeNotFound
	}
	delete(m.employees, uid)
	return nil
}
