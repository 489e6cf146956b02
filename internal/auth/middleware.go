package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/segyhp/miniapps-backend/internal/domain"
	"github.com/segyhp/miniapps-backend/internal/repository"
	"github.com/segyhp/miniapps-backend/pkg/response"
)

type userContextKey struct{}

// Middleware resolves the bearer credential to a User and stores it in the
// request context. Every route behind it can assume an authenticated caller.
func Middleware(tm *TokenManager, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "missing authorization header")
				return
			}

			tokenString, err := ExtractToken(authHeader)
			if err != nil {
				response.Unauthorized(w, "invalid authorization header")
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				response.Unauthorized(w, "invalid token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				response.Unauthorized(w, "invalid token")
				return
			}

			// Role comes from storage, not the token.
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				response.Unauthorized(w, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated caller, or nil outside the
// middleware.
func UserFromContext(ctx context.Context) *domain.User {
	if u, ok := ctx.Value(userContextKey{}).(*domain.User); ok {
		return u
	}
	return nil
}

// WithUser stores a caller in a context. Used by handler tests.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}
