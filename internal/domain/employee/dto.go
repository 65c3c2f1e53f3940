package employee

import (
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName     string          `json:"full_name"`
	EmployeeCode string          `json:"employee_code"`
	Designation  string          `json:"designation"`
	Email        *string         `json:"email"`
	PhoneNumber  *string         `json:"phone_number"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	IsAdmin      bool            `json:"is_admin"`
	Password     string          `json:"password"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must be 2-12 uppercase letters or digits"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must not be negative"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	UID         string           `json:"-"`
	FullName    *string          `json:"full_name"`
	Designation *string          `json:"designation"`
	Email       *string          `json:"email"`
	PhoneNumber *string          `json:"phone_number"`
	BaseSalary  *decimal.Decimal `json:"base_salary"`
	IsAdmin     *bool            `json:"is_admin"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UID) {
		errs = append(errs, validator.ValidationError{Field: "uid", Message: "is required"})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	UID          string          `json:"uid"`
	FullName     string          `json:"full_name"`
	EmployeeCode string          `json:"employee_code"`
	Designation  string          `json:"designation"`
	Email        *string         `json:"email,omitempty"`
	PhoneNumber  *string         `json:"phone_number,omitempty"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	IsAdmin      bool            `json:"is_admin"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		UID:          e.UID,
		FullName:     e.FullName,
		EmployeeCode: e.EmployeeCode,
		Designation:  e.Designation,
		Email:        e.Email,
		PhoneNumber:  e.PhoneNumber,
		BaseSalary:   e.BaseSalary,
		IsAdmin:      e.IsAdmin,
	}
}
