package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/employee"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	uid, full_name, employee_code, designation, email, phone_number,
	base_salary, is_admin, password_hash, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.UID, &e.FullName, &e.EmployeeCode, &e.Designation, &e.Email, &e.PhoneNumber,
		&e.BaseSalary, &e.IsAdmin, &e.PasswordHash, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	if e.UID == "" {
		e.UID = uuid.NewString()
	}

	query := `
		INSERT INTO employees (
			uid, full_name, employee_code, designation, email, phone_number,
			base_salary, is_admin, password_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UID, e.FullName, e.EmployeeCode, e.Designation, e.Email, e.PhoneNumber,
		e.BaseSalary, e.IsAdmin, e.PasswordHash,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", database.MapError(err))
	}

	return e, nil
}

// GetByUID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUID(ctx context.Context, uid string) (employee.Employee, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE uid = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", database.MapError(err))
	}
	return e, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", database.MapError(err))
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", database.MapError(err))
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $2, designation = $3, email = $4, phone_number = $5,
			base_salary = $6, is_admin = $7, updated_at = NOW()
		WHERE uid = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UID, e.FullName, e.Designation, e.Email, e.PhoneNumber, e.BaseSalary, e.IsAdmin,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", database.MapError(err))
	}
	return e, nil
}

// Delete implements employee.EmployeeRepository. The employee's attendance
// records and payments go with them, in one transaction.
func (r *employeeRepository) Delete(ctx context.Context, uid string) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE employee_uid = $1`, uid); err != nil {
			return fmt.Errorf("failed to delete attendance records: %w", database.MapError(err))
		}
		if _, err := q.Exec(ctx, `DELETE FROM salary_payments WHERE employee_uid = $1`, uid); err != nil {
			return fmt.Errorf("failed to delete salary payments: %w", database.MapError(err))
		}

		tag, err := q.Exec(ctx, `DELETE FROM employees WHERE uid = $1`, uid)
		if err != nil {
			return fmt.Errorf("failed to delete employee: %w", database.MapError(err))
		}
		if tag.RowsAffected() == 0 {
			return employee.ErrEmployeeNotFound
		}
		return nil
	})
}
