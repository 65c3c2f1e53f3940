package payroll

import (
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	EmployeeUID string           `json:"employee_uid"`
	MonthKey    string           `json:"month_key"`
	Amount      *decimal.Decimal `json:"amount"` // defaults to computed net salary
	Notes       *string          `json:"notes"`
}

func (r RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeUID) {
		errs = append(errs, validator.ValidationError{Field: "employee_uid", Message: "is required"})
	}
	if validator.IsEmpty(r.MonthKey) {
		errs = append(errs, validator.ValidationError{Field: "month_key", Message: "is required"})
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
