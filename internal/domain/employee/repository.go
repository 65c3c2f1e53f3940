package employee

import "context"

// EmployeeRepository defines data access for the employee directory. The
// attendance and payroll engines treat employees as read-only input.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)

	GetByUID(ctx context.Context, uid string) (Employee, error)

	// GetByCode looks an employee up by their employee code (login path).
	GetByCode(ctx context.Context, code string) (Employee, error)

	// List returns all employees ordered by employee code.
	List(ctx context.Context) ([]Employee, error)

	Update(ctx context.Context, e Employee) (Employee, error)

	Delete(ctx context.Context, uid string) error
}

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, uid string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, uid string) error
}
