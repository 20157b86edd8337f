package api

import (
	"centsible-server/src/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Routing and middleware ordering can be exercised without a database; no
// handler below touches the pool before auth rejects the request.

func newTestRouter(cfg config.Config) http.Handler {
	return NewRouter(nil, zap.NewNop(), cfg)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(config.Config{})

	for _, path := range []string{
		"/api/expenses",
		"/api/budgets",
		"/api/category-rules",
		"/api/subscriptions",
		"/api/watchlist",
		"/api/goals",
		"/api/split-bills",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDemoModeBlocksWrites(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(config.Config{DemoMode: true})

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
