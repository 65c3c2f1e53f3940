package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// CreateIfAbsent inserts unless a holiday already exists for the date.
	// created=false means the date was already a holiday.
	CreateIfAbsent(ctx context.Context, h Holiday) (bool, error)

	// Get returns nil when the date is not a holiday.
	Get(ctx context.Context, date time.Time) (*Holiday, error)

	// Delete removes a non-Sunday holiday. deleted=false with no error means
	// the row exists but is protected.
	Delete(ctx context.Context, date time.Time) error

	// ListByRange returns holidays with start <= Date <= end, ascending.
	ListByRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
}

type HolidayService interface {
	// MaterializeSundays inserts a Sunday holiday for every Sunday in the
	// salary month that is not already a holiday. Idempotent.
	MaterializeSundays(ctx context.Context, monthKey string) (MaterializeResult, error)

	Add(ctx context.Context, req AddHolidayRequest) (HolidayResponse, error)

	// Remove rejects auto-Sunday holidays with ErrProtectedHoliday.
	Remove(ctx context.Context, date string) error

	// InRange returns the holidays inside a salary month window.
	InRange(ctx context.Context, monthKey string) ([]HolidayResponse, error)
}
