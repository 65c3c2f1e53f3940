package response

import (
	"errors"
	"net/http"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/attendance"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/auth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/employee"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/holiday"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/payroll"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/database"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/salarymonth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotMarkedYet):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this date")
	case errors.Is(err, holiday.ErrProtectedHoliday):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrAlreadyPaid):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrPaymentNotFound):
		NotFound(w, "Salary payment not found")

	// Malformed salary month keys are a caller mistake, not a server fault.
	case errors.Is(err, salarymonth.ErrInvalidKey):
		BadRequest(w, err.Error(), nil)

	// Storage unreachable or timed out
	case errors.Is(err, database.ErrUnavailable):
		ServiceUnavailable(w, "Storage temporarily unavailable, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
