package v1_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leadai/readiness/internal/audit"
	"github.com/leadai/readiness/internal/domain"
	"github.com/leadai/readiness/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers: inject the authenticated user into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	return ctx
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	audits   domain.AuditRepository
	profiles domain.ProfileRepository
}

func (m *mockDataStore) Audits() domain.AuditRepository     { return m.audits }
func (m *mockDataStore) Profiles() domain.ProfileRepository { return m.profiles }

// ---------------------------------------------------------------------------
// Mock AuditService
// ---------------------------------------------------------------------------

type mockAuditService struct {
	runFunc  func(ctx context.Context, req audit.Request) (*audit.Response, error)
	getFunc  func(ctx context.Context, userID, id uuid.UUID) (*domain.Audit, error)
	listFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Audit, error)
}

func (m *mockAuditService) Run(ctx context.Context, req audit.Request) (*audit.Response, error) {
	return m.runFunc(ctx, req)
}

func (m *mockAuditService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Audit, error) {
	return m.getFunc(ctx, userID, id)
}

func (m *mockAuditService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Audit, error) {
	return m.listFunc(ctx, userID)
}

// ---------------------------------------------------------------------------
// Mock ProfileRepository
// ---------------------------------------------------------------------------

type mockProfileRepo struct {
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

func (m *mockProfileRepo) Create(_ context.Context, _ *domain.Profile) error {
	panic("not implemented")
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProfileRepo) GetByAPIKeyPrefix(_ context.Context, _ string) (*domain.Profile, error) {
	panic("not implemented")
}

func (m *mockProfileRepo) DeductCredit(_ context.Context, _ uuid.UUID) error {
	panic("not implemented")
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func completedAudit(userID uuid.UUID, dom string) *domain.Audit {
	score := 72
	now := time.Now()
	return &domain.Audit{
		ID:            uuid.New(),
		UserID:        userID,
		BusinessEmail: "owner@" + dom,
		Domain:        dom,
		Categories:    []domain.Category{domain.CategoryWebsite},
		Status:        domain.AuditStatusCompleted,
		Result: &domain.AuditResult{
			OverallScore: score,
			Categories: map[domain.Category]domain.CategoryResult{
				domain.CategoryWebsite: {
					Score:           score,
					Narrative:       "Website & SEO Performance: solid foundation.",
					Recommendations: []string{"Improve page speed"},
					Priority:        domain.PriorityLow,
					Opportunities:   []string{"SEO automation"},
					Risks:           []string{"Stale content"},
				},
			},
			Summary:               "Assessment summary.",
			ActionPlan:            []string{"Do the first thing"},
			Opportunities:         []string{"Chatbots"},
			Risks:                 []string{"Falling behind"},
			CompetitiveAdvantages: []string{"Early mover"},
			Roadmap: []domain.RoadmapPhase{
				{Name: "Phase 1: Assessment & Foundation", Duration: "1-3 months", Actions: []string{"Audit data"}, ExpectedROI: "20%"},
			},
		},
		OverallScore: &score,
		CreatedAt:    now,
		UpdatedAt:    now,
		CompletedAt:  &now,
	}
}
