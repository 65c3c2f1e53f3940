package holiday

import (
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
)

type AddHolidayRequest struct {
	Date   string  `json:"date"` // "YYYY-MM-DD"
	Reason *string `json:"reason"`
}

func (r AddHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	// The Sunday reason is reserved for the materializer.
	if r.Reason != nil && *r.Reason == SundayReason {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is reserved for auto-generated Sundays"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

type MaterializeResult struct {
	MonthKey string `json:"month_key"`
	Inserted int    `json:"inserted"`
	Existing int    `json:"existing"`
}
