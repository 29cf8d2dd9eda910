package audit_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leadai/readiness/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock AuditRepository
// ---------------------------------------------------------------------------

type mockAuditRepo struct {
	createFunc          func(ctx context.Context, a *domain.Audit) error
	getByIDFunc         func(ctx context.Context, userID, id uuid.UUID) (*domain.Audit, error)
	listByUserFunc      func(ctx context.Context, userID uuid.UUID) ([]*domain.Audit, error)
	latestCompletedFunc func(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error)
	completeFunc        func(ctx context.Context, id uuid.UUID, result *domain.AuditResult, reportHTML string) error
	failFunc            func(ctx context.Context, id uuid.UUID, message string) error
}

func (m *mockAuditRepo) Create(ctx context.Context, a *domain.Audit) error {
	return m.createFunc(ctx, a)
}

func (m *mockAuditRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Audit, error) {
	return m.getByIDFunc(ctx, userID, id)
}

func (m *mockAuditRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Audit, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockAuditRepo) LatestCompleted(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error) {
	return m.latestCompletedFunc(ctx, userID, dom)
}

func (m *mockAuditRepo) Complete(ctx context.Context, id uuid.UUID, result *domain.AuditResult, reportHTML string) error {
	return m.completeFunc(ctx, id, result, reportHTML)
}

func (m *mockAuditRepo) Fail(ctx context.Context, id uuid.UUID, message string) error {
	return m.failFunc(ctx, id, message)
}

// newAuditRepo returns a repo where creation and completion succeed and no
// prior audit exists. Tests override the fields they care about.
func newAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{
		createFunc: func(ctx context.Context, a *domain.Audit) error { return nil },
		latestCompletedFunc: func(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error) {
			return nil, domain.ErrNotFound
		},
		completeFunc: func(ctx context.Context, id uuid.UUID, result *domain.AuditResult, reportHTML string) error {
			return nil
		},
		failFunc: func(ctx context.Context, id uuid.UUID, message string) error { return nil },
	}
}

// ---------------------------------------------------------------------------
// Mock ProfileRepository
// ---------------------------------------------------------------------------

type mockProfileRepo struct {
	createFunc         func(ctx context.Context, p *domain.Profile) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	getByAPIKeyPrefixF func(ctx context.Context, prefix string) (*domain.Profile, error)
	deductCreditFunc   func(ctx context.Context, id uuid.UUID) error
	deductCreditCalls  int
}

func (m *mockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	return m.createFunc(ctx, p)
}

func (m *mockProfileRepo) GetByAPIKeyPrefix(ctx context.Context, prefix string) (*domain.Profile, error) {
	if m.getByAPIKeyPrefixF != nil {
		return m.getByAPIKeyPrefixF(ctx, prefix)
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProfileRepo) DeductCredit(ctx context.Context, id uuid.UUID) error {
	m.deductCreditCalls++
	if m.deductCreditFunc != nil {
		return m.deductCreditFunc(ctx, id)
	}
	return nil
}

// newProfileRepo returns a repo holding a professional-plan profile with
// credits to spend.
func newProfileRepo(userID uuid.UUID) *mockProfileRepo {
	return &mockProfileRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
			if id != userID {
				return nil, domain.ErrNotFound
			}
			return &domain.Profile{
				ID:           userID,
				Email:        "owner@techstartup.io",
				Plan:         domain.PlanProfessional,
				AuditCredits: 5,
			}, nil
		},
	}
}

// ---------------------------------------------------------------------------
// Mock cache, enhancer, notifier
// ---------------------------------------------------------------------------

type mockCache struct {
	getFunc  func(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error)
	setFunc  func(ctx context.Context, a *domain.Audit) error
	setCalls int
}

func (m *mockCache) Get(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, dom)
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, a *domain.Audit) error {
	m.setCalls++
	if m.setFunc != nil {
		return m.setFunc(ctx, a)
	}
	return nil
}

type mockEnhancer struct {
	enabled     bool
	enhanceFunc func(ctx context.Context, dom, email string, categories []domain.Category, heuristic *domain.AuditResult) (*domain.AuditResult, error)
}

func (m *mockEnhancer) Enabled() bool { return m.enabled }

func (m *mockEnhancer) Enhance(ctx context.Context, dom, email string, categories []domain.Category, heuristic *domain.AuditResult) (*domain.AuditResult, error) {
	return m.enhanceFunc(ctx, dom, email, categories, heuristic)
}

type mockNotifier struct {
	completed []*domain.Audit
}

func (m *mockNotifier) AuditCompleted(ctx context.Context, a *domain.Audit) {
	m.completed = append(m.completed, a)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func completedAudit(userID uuid.UUID, dom string, createdAt time.Time) *domain.Audit {
	score := 72
	return &domain.Audit{
		ID:            uuid.New(),
		UserID:        userID,
		BusinessEmail: "owner@" + dom,
		Domain:        dom,
		Categories:    []domain.Category{domain.CategoryWebsite},
		Status:        domain.AuditStatusCompleted,
		OverallScore:  &score,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}
