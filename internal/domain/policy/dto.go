package policy

import (
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
)

type UpdatePolicyRequest struct {
	OfficeStartTime      *string `json:"office_start_time"`
	OfficeEndTime        *string `json:"office_end_time"`
	LateMarkAfterMinutes *int    `json:"late_mark_after_minutes"`
	HalfDayAfterMinutes  *int    `json:"half_day_after_minutes"`
	SalaryStartDay       *int    `json:"salary_start_day"`
	Currency             *string `json:"currency"`
}

func (r UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OfficeStartTime != nil && !validator.IsValidTimeOfDay(*r.OfficeStartTime) {
		errs = append(errs, validator.ValidationError{Field: "office_start_time", Message: "must be HH:MM in 24h format"})
	}
	if r.OfficeEndTime != nil && !validator.IsValidTimeOfDay(*r.OfficeEndTime) {
		errs = append(errs, validator.ValidationError{Field: "office_end_time", Message: "must be HH:MM in 24h format"})
	}
	if r.LateMarkAfterMinutes != nil && *r.LateMarkAfterMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_mark_after_minutes", Message: "must not be negative"})
	}
	if r.HalfDayAfterMinutes != nil && *r.HalfDayAfterMinutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "half_day_after_minutes", Message: "must be positive"})
	}
	if r.SalaryStartDay != nil && (*r.SalaryStartDay < 1 || *r.SalaryStartDay > 28) {
		errs = append(errs, validator.ValidationError{Field: "salary_start_day", Message: "must be between 1 and 28"})
	}
	if r.Currency != nil && validator.IsEmpty(*r.Currency) {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	OfficeStartTime      string `json:"office_start_time"`
	OfficeEndTime        string `json:"office_end_time"`
	LateMarkAfterMinutes int    `json:"late_mark_after_minutes"`
	HalfDayAfterMinutes  int    `json:"half_day_after_minutes"`
	SalaryStartDay       int    `json:"salary_start_day"`
	Currency             string `json:"currency"`
}
