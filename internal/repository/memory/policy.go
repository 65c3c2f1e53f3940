package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/domain/policy"
)

type PolicyRepository struct {
	mu     sync.Mutex
	stored *policy.Policy
}

func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{}
}

func (m *PolicyRepository) Get(_ context.Context) (policy.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stored == nil {
		return policy.Policy{}, policy.ErrPolicyNotFound
	}
	return *m.stored, nil
}

func (m *PolicyRepository) Upsert(_ context.Context, p policy.Policy) (policy.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.UpdatedAt = time.Now()
	m.stored = &p
	return p, nil
}
