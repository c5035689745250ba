package middleware

import (
	"context"
	"net/http"

	jwtinfra "github.com/lamiarosa/store-api/internal/infrastructure/jwt"
)

// CookieName is the session-credential cookie.
const CookieName = "auth_token"

type contextKey string

const ClaimsKey contextKey = "claims"

// Auth returns middleware that validates the session cookie and injects
// claims into context. Requests without a valid credential are rejected.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			claims, err := provider.Verify(cookie.Value)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the session cookie best-effort: a valid credential
// injects claims, anything else passes through anonymous.
func OptionalAuth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(CookieName); err == nil {
				if claims, err := provider.Verify(cookie.Value); err == nil {
					ctx := context.WithValue(r.Context(), ClaimsKey, claims)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext extracts session claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}
