package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadai/readiness/internal/audit"
	"github.com/leadai/readiness/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Audits() domain.AuditRepository
	Profiles() domain.ProfileRepository
}

// AuditService abstracts the audit pipeline for handler testing.
// *audit.Orchestrator satisfies this interface.
type AuditService interface {
	Run(ctx context.Context, req audit.Request) (*audit.Response, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Audit, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Audit, error)
}
