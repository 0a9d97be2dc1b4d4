package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

type contextKey string

const ContextKeyCaller = contextKey("caller")

// TenantAuthMiddleware guards every /api route. The Bearer token must be a
// valid RS256 access token from issuer; its claims become the request's
// models.Caller.
func TenantAuthMiddleware(pub *rsa.PublicKey, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				utils.RespondErrorWithCode(w, r, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Missing Authorization header", nil)
				return
			}

			claims, err := ValidateToken(strings.TrimPrefix(h, "Bearer "), pub, issuer)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(w, r, http.StatusUnauthorized, utils.ErrCodeTokenExpired,
						"Token expired", nil, err)
					return
				}
				utils.RespondErrorWithCode(w, r, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Invalid token", nil, err)
				return
			}

			caller, err := CallerFromClaims(claims)
			if err != nil {
				utils.RespondErrorWithCode(w, r, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Invalid claims", nil, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func WithCaller(ctx context.Context, c models.Caller) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, c)
}

func CallerFromContext(ctx context.Context) (models.Caller, bool) {
	c, ok := ctx.Value(ContextKeyCaller).(models.Caller)
	return c, ok
}
