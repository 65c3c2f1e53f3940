package payroll

import "errors"

var (
	ErrAlreadyPaid     = errors.New("salary already paid for this month")
	ErrPaymentNotFound = errors.New("salary payment not found")
)
