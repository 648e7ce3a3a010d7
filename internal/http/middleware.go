package http

import (
	"context"
	"net/http"

	"github.com/getbarcodesolutions-star/GBS/internal/auth"
)

type ctxKey int

const identityKey ctxKey = 0

// AuthMiddleware verifies the token header and injects the caller identity
// into the request context. Handlers downstream never see client-supplied
// user identifiers.
func AuthMiddleware(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("token")
			if token == "" {
				respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. Must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok || !identity.IsAdmin() {
			respondAuthFailure(w, http.StatusForbidden, "not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
