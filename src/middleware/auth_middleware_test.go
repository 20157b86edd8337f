package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	var gotUserID int64
	var gotUsername string
	var gotSuperAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value("user_id").(int64)
		gotUsername = r.Context().Value("username").(string)
		gotSuperAdmin = r.Context().Value("super_admin").(bool)
		w.WriteHeader(http.StatusOK)
	})

	token := signTestToken(t, jwt.MapClaims{
		"user_id":     float64(42),
		"username":    "nick",
		"super_admin": true,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/42", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	JWTAuthMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, "nick", gotUsername)
	assert.True(t, gotSuperAdmin)
}

func TestJWTAuthMiddlewareMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/user/1", nil)
	rec := httptest.NewRecorder()
	JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-different-secret")

	token := signTestToken(t, jwt.MapClaims{
		"user_id":  float64(1),
		"username": "nick",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token := signTestToken(t, jwt.MapClaims{
		"user_id":  float64(1),
		"username": "nick",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareMissingClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	// Token lacks user_id.
	token := signTestToken(t, jwt.MapClaims{
		"username": "nick",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSuperAdminMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tc := range []struct {
		name       string
		superAdmin bool
		want       int
	}{
		{"admin allowed", true, http.StatusOK},
		{"non-admin forbidden", false, http.StatusForbidden},
	} {
		t.Run(tc.name, func(t *testing.T) {
			token := signTestToken(t, jwt.MapClaims{
				"user_id":     float64(1),
				"username":    "nick",
				"super_admin": tc.superAdmin,
				"exp":         time.Now().Add(time.Hour).Unix(),
			})
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			JWTAuthMiddleware(SuperAdminMiddleware(next)).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
