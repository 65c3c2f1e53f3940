package policy

import "context"

// PolicyRepository persists the single active policy row.
type PolicyRepository interface {
	// Get returns the stored policy or ErrPolicyNotFound when none has been
	// saved yet.
	Get(ctx context.Context) (Policy, error)

	// Upsert replaces the stored policy.
	Upsert(ctx context.Context, p Policy) (Policy, error)
}

// PolicyService exposes the policy to the rest of the engine and to the
// settings UI.
type PolicyService interface {
	// Current returns the active policy, falling back to Default when no
	// policy has been saved.
	Current(ctx context.Context) (Policy, error)

	// Update validates and saves a new policy snapshot.
	Update(ctx context.Context, req UpdatePolicyRequest) (Policy, error)
}
