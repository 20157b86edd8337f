package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestDemoModeMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tc := range []struct {
		name   string
		demo   bool
		method string
		path   string
		want   int
	}{
		{"demo blocks writes", true, http.MethodPost, "/api/expenses", http.StatusForbidden},
		{"demo allows reads", true, http.MethodGet, "/api/expenses", http.StatusOK},
		{"demo allows login", true, http.MethodPost, "/api/login", http.StatusOK},
		{"demo allows register", true, http.MethodPost, "/api/register", http.StatusOK},
		{"demo allows shared bill lookup", true, http.MethodPost, "/api/split-bills/shared/abc", http.StatusOK},
		{"normal mode allows writes", false, http.MethodPost, "/api/expenses", http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			DemoModeMiddleware(tc.demo)(next).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

// The demo guard sits ahead of JWT auth in the chain, so the super-admin
// bypass must work off the bearer token itself, not context values.
func TestDemoModeMiddlewareSuperAdminBypass(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := DemoModeMiddleware(true)(next)

	for _, tc := range []struct {
		name       string
		superAdmin bool
		want       int
	}{
		{"super admin writes allowed", true, http.StatusOK},
		{"regular user writes blocked", false, http.StatusForbidden},
	} {
		t.Run(tc.name, func(t *testing.T) {
			token := signTestToken(t, jwt.MapClaims{
				"user_id":     float64(1),
				"username":    "nick",
				"super_admin": tc.superAdmin,
				"exp":         time.Now().Add(time.Hour).Unix(),
			})
			req := httptest.NewRequest(http.MethodDelete, "/api/expenses/1", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
