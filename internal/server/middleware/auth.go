package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/leadai/readiness/internal/auth"
	"github.com/leadai/readiness/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

// Auth authenticates requests by JWT bearer token or X-API-Key header and
// puts the requester's user ID into the context. Requests with neither
// credential get a 401.
func Auth(jwtSecret string, profiles domain.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try Bearer token first.
			if tok := extractBearer(r); tok != "" {
				ctx, ok := authenticateJWT(r.Context(), tok, jwtSecret)
				if ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Try API key.
			if key := r.Header.Get("X-API-Key"); key != "" {
				ctx, ok := authenticateAPIKey(r.Context(), key, profiles)
				if ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
		})
	}
}

func extractBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

func authenticateJWT(ctx context.Context, tokenStr, secret string) (context.Context, bool) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return ctx, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, ContextKeyUserEmail, claims.Email)
	return ctx, true
}

func authenticateAPIKey(ctx context.Context, rawKey string, profiles domain.ProfileRepository) (context.Context, bool) {
	if len(rawKey) < auth.PrefixLen {
		return ctx, false
	}

	profile, err := profiles.GetByAPIKeyPrefix(ctx, rawKey[:auth.PrefixLen])
	if err != nil {
		return ctx, false
	}

	if auth.VerifyAPIKey(rawKey, profile.APIKeyHash) != nil {
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyUserID, profile.ID)
	ctx = context.WithValue(ctx, ContextKeyUserEmail, profile.Email)
	return ctx, true
}
