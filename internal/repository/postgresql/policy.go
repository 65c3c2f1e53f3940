package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

// The settings table holds a single row keyed by a fixed id.
const policyRowID = "default"

// Get implements policy.PolicyRepository.
func (r *policyRepository) Get(ctx context.Context) (policy.Policy, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, office_start_time, office_end_time, late_mark_after_minutes,
			   half_day_after_minutes, salary_start_day, currency,
			   work_hours_per_day, salary_divisor_days, updated_at
		FROM policy_settings
		WHERE id = $1
	`

	var p policy.Policy
	err := q.QueryRow(ctx, query, policyRowID).Scan(
		&p.ID, &p.OfficeStartTime, &p.OfficeEndTime, &p.LateMarkAfterMinutes,
		&p.HalfDayAfterMinutes, &p.SalaryStartDay, &p.Currency,
		&p.WorkHoursPerDay, &p.SalaryDivisorDays, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Policy{}, policy.ErrPolicyNotFound
		}
		return policy.Policy{}, fmt.Errorf("failed to get policy: %w", database.MapError(err))
	}
	return p, nil
}

// Upsert implements policy.PolicyRepository.
func (r *policyRepository) Upsert(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	ctx, cancel := database.WithQueryTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO policy_settings (
			id, office_start_time, office_end_time, late_mark_after_minutes,
			half_day_after_minutes, salary_start_day, currency,
			work_hours_per_day, salary_divisor_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			office_start_time = EXCLUDED.office_start_time,
			office_end_time = EXCLUDED.office_end_time,
			late_mark_after_minutes = EXCLUDED.late_mark_after_minutes,
			half_day_after_minutes = EXCLUDED.half_day_after_minutes,
			salary_start_day = EXCLUDED.salary_start_day,
			currency = EXCLUDED.currency,
			work_hours_per_day = EXCLUDED.work_hours_per_day,
			salary_divisor_days = EXCLUDED.salary_divisor_days,
			updated_at = NOW()
		RETURNING updated_at
	`

	p.ID = policyRowID
	err := q.QueryRow(ctx, query,
		p.ID, p.OfficeStartTime, p.OfficeEndTime, p.LateMarkAfterMinutes,
		p.HalfDayAfterMinutes, p.SalaryStartDay, p.Currency,
		p.WorkHoursPerDay, p.SalaryDivisorDays,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("failed to upsert policy: %w", database.MapError(err))
	}
	return p, nil
}
