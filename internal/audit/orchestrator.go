// Package audit orchestrates a single audit request end to end: validation,
// credit check, cache lookup, heuristic scoring, optional model enhancement,
// report rendering, persistence, and credit deduction.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leadai/readiness/internal/domain"
	"github.com/leadai/readiness/internal/engine"
	"github.com/leadai/readiness/internal/report"
)

// CacheWindow is how long a completed audit for the same requester and
// domain is reused instead of recomputed.
const CacheWindow = 24 * time.Hour

// Enhancer layers model narrative over a heuristic result. *enhance.Enhancer
// satisfies it.
type Enhancer interface {
	Enabled() bool
	Enhance(ctx context.Context, dom, email string, categories []domain.Category, heuristic *domain.AuditResult) (*domain.AuditResult, error)
}

// ResultCache is a fast-path lookup for completed audits. A miss returns
// (nil, nil). *redis.ResultCache satisfies it.
type ResultCache interface {
	Get(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error)
	Set(ctx context.Context, a *domain.Audit) error
}

// Notifier announces completed audits. Best-effort; implementations must not
// block completion on delivery failures.
type Notifier interface {
	AuditCompleted(ctx context.Context, a *domain.Audit)
}

// Request is one inbound audit request.
type Request struct {
	UserID        uuid.UUID
	BusinessEmail string
	Categories    []domain.Category
}

// Response is the orchestrator's answer: the audit record, whether it came
// from the cache window, and how long the run took.
type Response struct {
	Audit     *domain.Audit
	FromCache bool
	Duration  time.Duration
}

type Orchestrator struct {
	audits   domain.AuditRepository
	profiles domain.ProfileRepository
	analyzer *engine.Analyzer
	enhancer Enhancer
	cache    ResultCache
	notifier Notifier
	window   time.Duration
}

// New wires the orchestrator. cache and notifier may be nil; both are
// optional fast paths that degrade to the database and to silence.
// A non-positive window falls back to CacheWindow.
func New(
	audits domain.AuditRepository,
	profiles domain.ProfileRepository,
	analyzer *engine.Analyzer,
	enhancer Enhancer,
	cache ResultCache,
	notifier Notifier,
	window time.Duration,
) *Orchestrator {
	if window <= 0 {
		window = CacheWindow
	}
	return &Orchestrator{
		audits:   audits,
		profiles: profiles,
		analyzer: analyzer,
		enhancer: enhancer,
		cache:    cache,
		notifier: notifier,
		window:   window,
	}
}

// Run executes the audit state machine. Validation, auth, and quota failures
// surface before any record exists; any failure after record creation marks
// the record failed and is returned. Credit deduction is best-effort by
// design: a completed result is never withheld over a billing-ledger error.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()

	dom, err := o.validate(req)
	if err != nil {
		return nil, err
	}

	profile, err := o.profiles.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("audit.Orchestrator.Run: requester %s: %w", req.UserID, domain.ErrUnauthorized)
	}

	if err := profile.CanRunAudit(); err != nil {
		return nil, fmt.Errorf("audit.Orchestrator.Run: %w", err)
	}

	if cached := o.lookupCached(ctx, req.UserID, dom); cached != nil {
		log.Info().Str("domain", dom).Stringer("audit_id", cached.ID).Msg("returning cached audit")
		return &Response{Audit: cached, FromCache: true, Duration: time.Since(started)}, nil
	}

	now := time.Now()
	rec := &domain.Audit{
		ID:            uuid.New(),
		UserID:        req.UserID,
		BusinessEmail: req.BusinessEmail,
		Domain:        dom,
		Categories:    req.Categories,
		Status:        domain.AuditStatusProcessing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := o.audits.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("audit.Orchestrator.Run: create record: %w", err)
	}

	result := o.analyze(ctx, dom, req)

	html, err := report.RenderHTML(result, report.Meta{
		Domain:        dom,
		BusinessEmail: req.BusinessEmail,
		GeneratedAt:   time.Now(),
	})
	if err != nil {
		return nil, o.failRecord(ctx, rec.ID, fmt.Errorf("audit.Orchestrator.Run: render report: %w", err))
	}

	if err := o.audits.Complete(ctx, rec.ID, result, html); err != nil {
		return nil, o.failRecord(ctx, rec.ID, fmt.Errorf("audit.Orchestrator.Run: persist result: %w", err))
	}

	completedAt := time.Now()
	rec.Status = domain.AuditStatusCompleted
	rec.Result = result
	rec.ReportHTML = html
	rec.OverallScore = &result.OverallScore
	rec.UpdatedAt = completedAt
	rec.CompletedAt = &completedAt

	// Post-completion side effects are best-effort.
	if o.cache != nil {
		if cacheErr := o.cache.Set(ctx, rec); cacheErr != nil {
			log.Warn().Err(cacheErr).Str("domain", dom).Msg("caching completed audit failed")
		}
	}
	if deductErr := o.profiles.DeductCredit(ctx, req.UserID); deductErr != nil {
		log.Warn().Err(deductErr).Stringer("user_id", req.UserID).Msg("credit deduction failed; audit delivered anyway")
	}
	if o.notifier != nil {
		o.notifier.AuditCompleted(ctx, rec)
	}

	duration := time.Since(started)
	log.Info().
		Str("domain", dom).
		Stringer("audit_id", rec.ID).
		Int("overall_score", result.OverallScore).
		Dur("duration", duration).
		Msg("audit completed")

	return &Response{Audit: rec, Duration: duration}, nil
}

// Get returns one of the requester's audits.
func (o *Orchestrator) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Audit, error) {
	a, err := o.audits.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("audit.Orchestrator.Get: %w", err)
	}
	return a, nil
}

// List returns the requester's audit history, newest first.
func (o *Orchestrator) List(ctx context.Context, userID uuid.UUID) ([]*domain.Audit, error) {
	audits, err := o.audits.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("audit.Orchestrator.List: %w", err)
	}
	return audits, nil
}

func (o *Orchestrator) validate(req Request) (string, error) {
	if len(req.Categories) == 0 {
		return "", fmt.Errorf("audit.Orchestrator: at least one analysis type required: %w", domain.ErrValidation)
	}
	for _, cat := range req.Categories {
		if !cat.Valid() {
			return "", fmt.Errorf("audit.Orchestrator: unknown analysis type %q: %w", cat, domain.ErrValidation)
		}
	}

	dom, err := engine.ExtractDomain(req.BusinessEmail)
	if err != nil {
		return "", err
	}
	return dom, nil
}

// lookupCached consults the cache, then the database, for a completed audit
// inside the cache window. Cache errors degrade to the database check.
func (o *Orchestrator) lookupCached(ctx context.Context, userID uuid.UUID, dom string) *domain.Audit {
	if o.cache != nil {
		cached, err := o.cache.Get(ctx, userID, dom)
		if err != nil {
			log.Warn().Err(err).Str("domain", dom).Msg("cache lookup failed")
		} else if cached != nil && cached.CacheEligible(o.window, time.Now()) {
			return cached
		}
	}

	prev, err := o.audits.LatestCompleted(ctx, userID, dom)
	if err != nil {
		return nil
	}
	if !prev.CacheEligible(o.window, time.Now()) {
		return nil
	}

	// Backfill the cache so the next hit skips the database.
	if o.cache != nil {
		if err := o.cache.Set(ctx, prev); err != nil {
			log.Warn().Err(err).Str("domain", dom).Msg("cache backfill failed")
		}
	}

	return prev
}

// analyze runs the heuristic scorer and, when configured, the model
// enhancement. Enhancement errors are never surfaced; the heuristic result
// stands.
func (o *Orchestrator) analyze(ctx context.Context, dom string, req Request) *domain.AuditResult {
	heuristic := o.analyzer.Analyze(dom, req.Categories)

	if o.enhancer == nil || !o.enhancer.Enabled() {
		return heuristic
	}

	enhanced, err := o.enhancer.Enhance(ctx, dom, req.BusinessEmail, req.Categories, heuristic)
	if err != nil {
		log.Warn().Err(err).Str("domain", dom).Msg("enhancement failed; using heuristic result")
		return heuristic
	}

	return enhanced
}

func (o *Orchestrator) failRecord(ctx context.Context, id uuid.UUID, cause error) error {
	if err := o.audits.Fail(ctx, id, cause.Error()); err != nil {
		log.Error().Err(err).Stringer("audit_id", id).Msg("marking audit failed also failed")
	}
	return cause
}
