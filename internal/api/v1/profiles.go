package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadai/readiness/internal/domain"
	"github.com/leadai/readiness/internal/server/middleware"
)

type ProfileResponse struct {
	Profile          *domain.Profile `json:"profile"`
	RemainingCredits int             `json:"remainingCredits"`
	MonthlyLimit     int             `json:"monthlyLimit" doc:"0 means unlimited"`
	RemainingMonthly int             `json:"remainingMonthly" doc:"-1 means unlimited"`
}

type GetProfileOutput struct {
	Body *ProfileResponse
}

func RegisterProfileRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the caller's profile and remaining quota",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *struct{}) (*GetProfileOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		p, err := store.Profiles().GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to get profile", err)
		}

		remainingMonthly := -1
		if !p.Plan.Unlimited() {
			remainingMonthly = p.Plan.MonthlyLimit() - p.AuditsUsedThisMonth
			if remainingMonthly < 0 {
				remainingMonthly = 0
			}
		}

		return &GetProfileOutput{Body: &ProfileResponse{
			Profile:          p,
			RemainingCredits: p.AuditCredits,
			MonthlyLimit:     p.Plan.MonthlyLimit(),
			RemainingMonthly: remainingMonthly,
		}}, nil
	})
}
