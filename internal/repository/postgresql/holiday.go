package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/holiday"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// CreateIfAbsent implements holiday.HolidayRepository. ON CONFLICT DO
// NOTHING keeps Sunday materialization idempotent under concurrent runs.
func (h *holidayRepository) CreateIfAbsent(ctx context.Context, hol holiday.Holiday) (bool, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (date, reason)
		VALUES ($1, $2)
		ON CONFLICT (date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, hol.Date, hol.Reason)
	if err != nil {
		return false, fmt.Errorf("failed to create holiday: %w", database.MapError(err))
	}
	return tag.RowsAffected() > 0, nil
}

// Get implements holiday.HolidayRepository.
func (h *holidayRepository) Get(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, h.db)

	query := `SELECT date, reason, created_at FROM holidays WHERE date = $1`

	var hol holiday.Holiday
	err := q.QueryRow(ctx, query, date).Scan(&hol.Date, &hol.Reason, &hol.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday: %w", database.MapError(err))
	}
	return &hol, nil
}

// Delete implements holiday.HolidayRepository. The reason guard is in the
// statement itself so a concurrent re-materialization cannot slip a Sunday
// past the check.
func (h *holidayRepository) Delete(ctx context.Context, date time.Time) error {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, h.db)

	query := `
		DELETE FROM holidays
		WHERE date = $1 AND (reason IS NULL OR reason <> $2)
	`

	tag, err := q.Exec(ctx, query, date, holiday.SundayReason)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", database.MapError(err))
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	existing, err := h.Get(ctx, date)
	if err != nil {
		return err
	}
	if existing == nil {
		return holiday.ErrHolidayNotFound
	}
	return holiday.ErrProtectedHoliday
}

// ListByRange implements holiday.HolidayRepository.
func (h *holidayRepository) ListByRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT date, reason, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", database.MapError(err))
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		if err := rows.Scan(&hol.Date, &hol.Reason, &hol.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}
	return holidays, rows.Err()
}
