package v1

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/leadai/readiness/internal/audit"
	"github.com/leadai/readiness/internal/domain"
	"github.com/leadai/readiness/internal/report"
	"github.com/leadai/readiness/internal/server/middleware"
)

type RunAuditInput struct {
	Body struct {
		BusinessEmail string            `json:"businessEmail" format:"email" doc:"Business email address; the audit targets its domain"`
		AnalysisTypes []domain.Category `json:"analysisTypes" minItems:"1" doc:"Analysis dimensions to score"`
	}
}

type RunAuditResponse struct {
	AuditID   uuid.UUID           `json:"auditId"`
	Status    domain.AuditStatus  `json:"status"`
	Results   *domain.AuditResult `json:"results,omitempty"`
	FromCache bool                `json:"fromCache,omitempty"`
	Duration  string              `json:"duration,omitempty"`
}

type RunAuditOutput struct {
	Body *RunAuditResponse
}

type GetAuditInput struct {
	ID uuid.UUID `path:"id" doc:"Audit ID"`
}

type GetAuditOutput struct {
	Body *domain.Audit
}

type ListAuditsOutput struct {
	Body []*domain.Audit
}

type DownloadAuditInput struct {
	ID uuid.UUID `path:"id" doc:"Audit ID"`
}

type DownloadAuditResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	PDF      string `json:"pdf" doc:"Base64-encoded PDF report"`
	Size     int    `json:"size" doc:"Decoded PDF size in bytes"`
}

type DownloadAuditOutput struct {
	Body *DownloadAuditResponse
}

func RegisterAuditRoutes(api huma.API, audits AuditService) {
	huma.Register(api, huma.Operation{
		OperationID: "run-audit",
		Method:      http.MethodPost,
		Path:        "/audits",
		Summary:     "Run an AI readiness audit",
		Tags:        []string{"Audits"},
	}, func(ctx context.Context, input *RunAuditInput) (*RunAuditOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		resp, err := audits.Run(ctx, audit.Request{
			UserID:        userID,
			BusinessEmail: input.Body.BusinessEmail,
			Categories:    input.Body.AnalysisTypes,
		})
		if err != nil {
			return nil, mapAuditError(err)
		}

		return &RunAuditOutput{Body: &RunAuditResponse{
			AuditID:   resp.Audit.ID,
			Status:    resp.Audit.Status,
			Results:   resp.Audit.Result,
			FromCache: resp.FromCache,
			Duration:  resp.Duration.Round(time.Millisecond).String(),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-audits",
		Method:      http.MethodGet,
		Path:        "/audits",
		Summary:     "List the caller's audits",
		Tags:        []string{"Audits"},
	}, func(ctx context.Context, _ *struct{}) (*ListAuditsOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		list, err := audits.List(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list audits", err)
		}

		return &ListAuditsOutput{Body: list}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-audit",
		Method:      http.MethodGet,
		Path:        "/audits/{id}",
		Summary:     "Get an audit by ID",
		Tags:        []string{"Audits"},
	}, func(ctx context.Context, input *GetAuditInput) (*GetAuditOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		a, err := audits.Get(ctx, userID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("audit not found")
			}
			return nil, huma.Error500InternalServerError("failed to get audit", err)
		}

		return &GetAuditOutput{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "download-audit-report",
		Method:      http.MethodGet,
		Path:        "/audits/{id}/download",
		Summary:     "Download the audit report as PDF",
		Tags:        []string{"Audits"},
	}, func(ctx context.Context, input *DownloadAuditInput) (*DownloadAuditOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		a, err := audits.Get(ctx, userID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("audit not found")
			}
			return nil, huma.Error500InternalServerError("failed to get audit", err)
		}

		if a.Status != domain.AuditStatusCompleted || a.Result == nil {
			return nil, huma.Error400BadRequest("audit is not completed")
		}

		generatedAt := a.CreatedAt
		if a.CompletedAt != nil {
			generatedAt = *a.CompletedAt
		}
		meta := report.Meta{
			Domain:        a.Domain,
			BusinessEmail: a.BusinessEmail,
			GeneratedAt:   generatedAt,
		}

		pdf, err := report.RenderPDF(a.Result, meta)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to render report", err)
		}

		return &DownloadAuditOutput{Body: &DownloadAuditResponse{
			Success:  true,
			Filename: report.Filename(a.Domain, meta),
			PDF:      base64.StdEncoding.EncodeToString(pdf),
			Size:     len(pdf),
		}}, nil
	})
}

// mapAuditError translates pipeline sentinels into HTTP status errors.
func mapAuditError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return huma.Error401Unauthorized("user not found or access denied")
	case errors.Is(err, domain.ErrInsufficientCredits):
		return huma.Error403Forbidden("insufficient audit credits")
	case errors.Is(err, domain.ErrLimitReached):
		return huma.Error403Forbidden("monthly audit limit reached")
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound("not found")
	}
	return huma.Error500InternalServerError("audit failed", err)
}
