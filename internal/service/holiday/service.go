package holiday

import (
	"context"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/holiday"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/salarymonth"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/validator"
)

type HolidayServiceImpl struct {
	holidayRepo   holiday.HolidayRepository
	policyService policy.PolicyService
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, policyService policy.PolicyService) holiday.HolidayService {
	return &HolidayServiceImpl{
		holidayRepo:   holidayRepo,
		policyService: policyService,
	}
}

func (s *HolidayServiceImpl) MaterializeSundays(ctx context.Context, monthKey string) (holiday.MaterializeResult, error) {
	key, err := salarymonth.Parse(monthKey)
	if err != nil {
		return holiday.MaterializeResult{}, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return holiday.MaterializeResult{}, err
	}
	start, end := key.Range(pol.SalaryStartDay)

	result := holiday.MaterializeResult{MonthKey: string(key)}
	reason := holiday.SundayReason
	for _, sunday := range salarymonth.SundaysIn(start, end) {
		created, err := s.holidayRepo.CreateIfAbsent(ctx, holiday.Holiday{Date: sunday, Reason: &reason})
		if err != nil {
			return result, err
		}
		if created {
			result.Inserted++
		} else {
			result.Existing++
		}
	}
	return result, nil
}

func (s *HolidayServiceImpl) Add(ctx context.Context, req holiday.AddHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := salarymonth.ParseDay(req.Date)
	created, err := s.holidayRepo.CreateIfAbsent(ctx, holiday.Holiday{Date: date, Reason: req.Reason})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if !created {
		return holiday.HolidayResponse{}, holiday.ErrHolidayExists
	}
	return holiday.HolidayResponse{Date: req.Date, Reason: req.Reason}, nil
}

func (s *HolidayServiceImpl) Remove(ctx context.Context, date string) error {
	day, err := salarymonth.ParseDay(date)
	if err != nil {
		return validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}
	return s.holidayRepo.Delete(ctx, day)
}

func (s *HolidayServiceImpl) InRange(ctx context.Context, monthKey string) ([]holiday.HolidayResponse, error) {
	key, err := salarymonth.Parse(monthKey)
	if err != nil {
		return nil, err
	}

	pol, err := s.policyService.Current(ctx)
	if err != nil {
		return nil, err
	}
	start, end := key.Range(pol.SalaryStartDay)

	holidays, err := s.holidayRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.HolidayResponse{
			Date:   salarymonth.FormatDay(h.Date),
			Reason: h.Reason,
		})
	}
	return responses, nil
}
