package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/oluwatobiiloba/inventory-api/internal/auth"
)

const authHeader = "Authorization"

var publicPaths = []string{
	"/api/v1/auth/register",
	"/api/v1/auth/login",
	"/healthz",
	"/readyz",
	"/metrics",
	"/",
}

// withAuth authenticates every non-public request and binds the resolved
// identity to the context. Verification failures of any kind are 401; a
// structurally valid token whose actor is gone or whose role diverged is 403.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.authn.Authenticate(r.Context(), r.Header.Get(authHeader))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnauthenticated):
				writeError(w, r, http.StatusUnauthorized, "invalid or missing credentials")
			case errors.Is(err, auth.ErrForbidden):
				writeError(w, r, http.StatusForbidden, "credential no longer valid")
			default:
				writeError(w, r, http.StatusInternalServerError, "authentication error")
			}
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePermission checks the bound identity against the permission table.
func (a *API) requirePermission(ctx context.Context, action auth.Action, resource string) error {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return auth.ErrForbidden
	}
	return a.perms.Authorize(identity, action, resource)
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
