package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	UID          string
	FullName     string
	EmployeeCode string
	Designation  string
	Email        *string
	PhoneNumber  *string
	BaseSalary   decimal.Decimal // monthly, in currency units
	IsAdmin      bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
