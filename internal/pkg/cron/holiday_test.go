package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/repository/memory"
	holidayService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/holiday"
	policyService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/policy"
)

func TestHolidayJobs_MaterializeCurrentMonthSundays(t *testing.T) {
	t.Parallel()

	holidayRepo := memory.NewHolidayRepository()
	policySvc := policyService.NewPolicyService(memory.NewPolicyRepository())
	jobs := NewHolidayJobs(holidayService.NewHolidayService(holidayRepo, policySvc), policySvc)
	jobs.Now = func() time.Time { return time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC) }

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(context.Background())

	// 2025-03-20 falls in salary month 2025_03 (Mar 6 through Apr 5), which
	// holds four Sundays.
	sundays, err := holidayRepo.ListByRange(context.Background(),
		time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, sundays, 4)

	// Running again inserts nothing new.
	scheduler.RunOnce(context.Background())
	sundays, err = holidayRepo.ListByRange(context.Background(),
		time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, sundays, 4)
}
