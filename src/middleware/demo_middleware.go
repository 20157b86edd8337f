package middleware

import (
	"net/http"
	"strings"
)

// DemoModeMiddleware blocks writes on demo deployments so visitors can
// browse seeded data without mutating it. Login/register stay open, as
// does the public split-bill share endpoint.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/login":    true,
		"/api/register": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isDemo && r.Method != http.MethodGet {
				if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
					next.ServeHTTP(w, r)
					return
				}
				if strings.HasPrefix(r.URL.Path, "/api/split-bills/shared/") {
					next.ServeHTTP(w, r)
					return
				}
				// This runs ahead of JWTAuthMiddleware, so the claim has to
				// come straight from the bearer token.
				if claims, err := ParseTokenFromRequest(r); err == nil {
					if superAdmin, _ := claims["super_admin"].(bool); superAdmin {
						next.ServeHTTP(w, r)
						return
					}
				}
				http.Error(w, "Demo mode: only GET requests are allowed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
