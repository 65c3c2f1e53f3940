package policy

import (
	"context"
	"errors"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
)

type PolicyServiceImpl struct {
	policyRepo policy.PolicyRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{policyRepo: policyRepo}
}

func (s *PolicyServiceImpl) Current(ctx context.Context) (policy.Policy, error) {
	p, err := s.policyRepo.Get(ctx)
	if errors.Is(err, policy.ErrPolicyNotFound) {
		return policy.Default(), nil
	}
	if err != nil {
		return policy.Policy{}, err
	}
	return p, nil
}

func (s *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.Policy, error) {
	if err := req.Validate(); err != nil {
		return policy.Policy{}, err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return policy.Policy{}, err
	}

	if req.OfficeStartTime != nil {
		current.OfficeStartTime = *req.OfficeStartTime
	}
	if req.OfficeEndTime != nil {
		current.OfficeEndTime = *req.OfficeEndTime
	}
	if req.LateMarkAfterMinutes != nil {
		current.LateMarkAfterMinutes = *req.LateMarkAfterMinutes
	}
	if req.HalfDayAfterMinutes != nil {
		current.HalfDayAfterMinutes = *req.HalfDayAfterMinutes
	}
	if req.SalaryStartDay != nil {
		current.SalaryStartDay = *req.SalaryStartDay
	}
	if req.Currency != nil {
		current.Currency = *req.Currency
	}

	return s.policyRepo.Upsert(ctx, current)
}
