package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/holiday"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/salarymonth"
)

// HolidayJobs keeps the holiday calendar ahead of the ledger: Sundays of the
// running salary month are materialized automatically so absence accounting
// never depends on an administrator remembering to seed them.
type HolidayJobs struct {
	holidayService holiday.HolidayService
	policyService  policy.PolicyService
	Now            func() time.Time
}

func NewHolidayJobs(holidayService holiday.HolidayService, policyService policy.PolicyService) *HolidayJobs {
	return &HolidayJobs{
		holidayService: holidayService,
		policyService:  policyService,
		Now:            time.Now,
	}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("materialize_sundays", 12*time.Hour, j.MaterializeCurrentMonthSundays)
}

// MaterializeCurrentMonthSundays seeds Sunday holidays for the salary month
// containing the current instant. Safe to run any number of times.
func (j *HolidayJobs) MaterializeCurrentMonthSundays(ctx context.Context) error {
	pol, err := j.policyService.Current(ctx)
	if err != nil {
		return err
	}

	key := salarymonth.KeyFor(j.Now(), pol.SalaryStartDay)
	result, err := j.holidayService.MaterializeSundays(ctx, string(key))
	if err != nil {
		return err
	}
	if result.Inserted > 0 {
		slog.Info("Cron: Sundays materialized", "month", result.MonthKey, "inserted", result.Inserted)
	}
	return nil
}
