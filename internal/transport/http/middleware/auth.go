package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/medilink-notifier/internal/infrastructure/jwt"
	"github.com/medilink-notifier/internal/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthOptions configures the bearer middleware.
type AuthOptions struct {
	// Strict rejects requests without a valid token. When false the request
	// proceeds unauthenticated and the problem is logged.
	Strict bool
	// Scope, when set, must match the token's scope claim.
	Scope string
}

// Auth validates the Bearer JWT and injects its claims into the context.
// A nil provider cannot verify anything: strict mode then rejects every request.
func Auth(provider *jwtinfra.Provider, opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(status int, msg string) {
				if opts.Strict {
					if status == http.StatusUnauthorized {
						w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
					}
					writeJSONError(w, status, msg)
					return
				}
				logger.Log.Debugw("unauthenticated request allowed", "path", r.URL.Path, "reason", msg)
				next.ServeHTTP(w, r)
			}

			if provider == nil {
				reject(http.StatusUnauthorized, "Authentication is not configured")
				return
			}
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				reject(http.StatusUnauthorized, "Missing or invalid authorization header")
				return
			}
			claims, err := provider.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logger.Log.Infow("bearer token rejected", "path", r.URL.Path, "error", err)
				reject(http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			if opts.Scope != "" && claims.Scope != opts.Scope {
				reject(http.StatusForbidden, "Token scope does not allow this operation")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtinfra.Claims)
	return c, ok
}
