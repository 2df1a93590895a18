package middleware

import (
	"context"
	"net/http"

	"github.com/ayush/goalsetter/internal/auth"
	"github.com/ayush/goalsetter/internal/models"
	"github.com/ayush/goalsetter/internal/render"
)

// IdentityResolver turns a bearer token into a caller identity.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (models.Identity, error)
}

// RequireAuth is middleware that validates the bearer token and injects
// the caller identity into the request context. A failed check writes the
// error response and stops the chain.
func RequireAuth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.ResolveIdentity(r.Context(), auth.BearerToken(r))
			if err != nil {
				render.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
