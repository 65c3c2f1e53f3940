package holiday

import "time"

// SundayReason is reserved for auto-materialized Sundays. Holidays carrying
// it cannot be removed through the normal management operations.
const SundayReason = "Sunday"

// Holiday is keyed by calendar day.
type Holiday struct {
	Date      time.Time // UTC midnight
	Reason    *string
	CreatedAt time.Time
}

// IsSunday reports whether this is an auto-materialized Sunday holiday.
func (h Holiday) IsSunday() bool {
	return h.Reason != nil && *h.Reason == SundayReason
}
