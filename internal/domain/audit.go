package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category is one fixed analysis dimension scored independently.
// The set is closed; values double as the wire contract.
type Category string

const (
	CategoryWebsite       Category = "website_analysis"
	CategorySocialMedia   Category = "social_media"
	CategoryOperations    Category = "operations"
	CategoryCompetitors   Category = "competitors"
	CategoryDataReadiness Category = "data_readiness"
	CategoryCompliance    Category = "compliance"
	CategoryAIOpportunity Category = "ai_opportunity"
)

// Categories lists every valid category in stable order.
func Categories() []Category {
	return []Category{
		CategoryWebsite,
		CategorySocialMedia,
		CategoryOperations,
		CategoryCompetitors,
		CategoryDataReadiness,
		CategoryCompliance,
		CategoryAIOpportunity,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryWebsite, CategorySocialMedia, CategoryOperations,
		CategoryCompetitors, CategoryDataReadiness, CategoryCompliance,
		CategoryAIOpportunity:
		return true
	}
	return false
}

// Label returns the human-readable name used in prompts and reports.
func (c Category) Label() string {
	switch c {
	case CategoryWebsite:
		return "Website & SEO Performance"
	case CategorySocialMedia:
		return "Social & Digital Presence"
	case CategoryOperations:
		return "Business Operations"
	case CategoryCompetitors:
		return "Competitor Intelligence"
	case CategoryDataReadiness:
		return "Data Readiness"
	case CategoryCompliance:
		return "Compliance & Risk"
	case CategoryAIOpportunity:
		return "AI Opportunity Assessment"
	}
	return string(c)
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityForScore maps a category score to its remediation priority:
// high below 50, medium below 70, low otherwise.
func PriorityForScore(score int) Priority {
	switch {
	case score < 50:
		return PriorityHigh
	case score < 70:
		return PriorityMedium
	}
	return PriorityLow
}

// CategoryResult is the per-category outcome of an audit.
type CategoryResult struct {
	Score           int      `json:"score"`
	Narrative       string   `json:"narrative"`
	Recommendations []string `json:"recommendations"`
	Priority        Priority `json:"priority"`
	Opportunities   []string `json:"opportunities"`
	Risks           []string `json:"risks"`
}

// RoadmapPhase is one step of the generated implementation roadmap.
type RoadmapPhase struct {
	Name        string   `json:"name"`
	Duration    string   `json:"duration"`
	Actions     []string `json:"actions"`
	ExpectedROI string   `json:"expected_roi"`
}

// AuditResult is the full structured outcome of one audit run.
type AuditResult struct {
	OverallScore          int                         `json:"overall_score"`
	Categories            map[Category]CategoryResult `json:"categories"`
	Summary               string                      `json:"summary"`
	ActionPlan            []string                    `json:"action_plan"`
	Opportunities         []string                    `json:"opportunities"`
	Risks                 []string                    `json:"risks"`
	CompetitiveAdvantages []string                    `json:"competitive_advantages"`
	Roadmap               []RoadmapPhase              `json:"roadmap"`
}

type AuditStatus string

const (
	AuditStatusProcessing AuditStatus = "processing"
	AuditStatusCompleted  AuditStatus = "completed"
	AuditStatusFailed     AuditStatus = "failed"
)

// Audit is a persisted audit record. It is created in processing state and
// transitions exactly once to completed or failed.
type Audit struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user_id"`
	BusinessEmail string       `json:"business_email"`
	Domain        string       `json:"domain"`
	Categories    []Category   `json:"categories"`
	Status        AuditStatus  `json:"status"`
	Result        *AuditResult `json:"result,omitempty"`
	ReportHTML    string       `json:"-"`
	OverallScore  *int         `json:"overall_score,omitempty"`
	ErrorMessage  string       `json:"error_message,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

// CacheEligible reports whether the audit may be reused instead of rerun:
// completed and created within the cache window.
func (a *Audit) CacheEligible(window time.Duration, now time.Time) bool {
	return a.Status == AuditStatusCompleted && now.Sub(a.CreatedAt) < window
}

type AuditRepository interface {
	Create(ctx context.Context, a *Audit) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Audit, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Audit, error)

	// LatestCompleted returns the most recent completed audit for the
	// user/domain pair, or ErrNotFound when none exists.
	LatestCompleted(ctx context.Context, userID uuid.UUID, domain string) (*Audit, error)

	Complete(ctx context.Context, id uuid.UUID, result *AuditResult, reportHTML string) error
	Fail(ctx context.Context, id uuid.UUID, message string) error
}
