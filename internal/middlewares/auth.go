package middlewares

import (
	"context"
	"net/http"

	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// TokenExtractor pulls the bearer token out of a request.
type TokenExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator resolves a verified token to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*models.Principal, error)
	RequireAdmin(principal *models.Principal) error
}

type principalKey struct{}

// setPrincipalToContext stores the authenticated principal in the context.
func setPrincipalToContext(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipalFromContext retrieves the authenticated principal from the
// context. Returns nil when the request was not authenticated.
func GetPrincipalFromContext(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey{}).(*models.Principal)
	return p
}

// AuthMiddleware returns a middleware that authenticates the request and
// stores the resolved principal in the context.
func AuthMiddleware(extractor TokenExtractor, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := extractor.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authentication failed", "error", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			principal, err := auth.Authenticate(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authentication failed", "error", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(setPrincipalToContext(ctx, principal)))
		})
	}
}

// AdminMiddleware returns a middleware that rejects requests whose
// principal lacks the admin role. It must run after AuthMiddleware.
func AdminMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipalFromContext(r.Context())
			if principal == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if err := auth.RequireAdmin(principal); err != nil {
				logger.Log.Infow("admin access denied", "username", principal.Username, "role", principal.Role)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
