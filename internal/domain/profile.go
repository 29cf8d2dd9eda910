package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// MonthlyLimit returns the number of audits the plan allows per month.
// Enterprise is unlimited (0).
func (p Plan) MonthlyLimit() int {
	switch p {
	case PlanStarter:
		return 10
	case PlanProfessional:
		return 50
	case PlanEnterprise:
		return 0
	}
	return 10
}

// Unlimited reports whether the plan has no monthly cap.
func (p Plan) Unlimited() bool {
	return p.MonthlyLimit() == 0
}

// Profile is a requester account with its credit balance. Subscription
// lifecycle (billing, plan changes) is owned by an external system; this
// service only reads the plan and spends credits.
type Profile struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name,omitempty"`
	CompanyName         string    `json:"company_name,omitempty"`
	Plan                Plan      `json:"plan"`
	AuditCredits        int       `json:"audit_credits"`
	AuditsUsedThisMonth int       `json:"audits_used_this_month"`

	// API key credential: the first 8 characters of the raw key plus a
	// SHA-256 hex digest of the whole key. The raw key is never stored.
	APIKeyPrefix string `json:"-"`
	APIKeyHash   string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanRunAudit checks the credit balance and the plan's monthly cap.
// Returns ErrInsufficientCredits or ErrLimitReached accordingly.
func (p *Profile) CanRunAudit() error {
	if p.AuditCredits <= 0 {
		return ErrInsufficientCredits
	}
	if !p.Plan.Unlimited() && p.AuditsUsedThisMonth >= p.Plan.MonthlyLimit() {
		return ErrLimitReached
	}
	return nil
}

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// GetByAPIKeyPrefix looks up the profile owning an API key by its
	// 8-character prefix. Callers must still compare the full hash.
	GetByAPIKeyPrefix(ctx context.Context, prefix string) (*Profile, error)

	// DeductCredit spends one audit credit and bumps the monthly usage
	// counter. The balance never goes below zero.
	DeductCredit(ctx context.Context, id uuid.UUID) error
}
