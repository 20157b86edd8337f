package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/centsible")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("DEMO_MODE", "")
	t.Setenv("REQUIRE_INVITE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, "postgres://localhost/centsible", cfg.DatabaseURL)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.False(t, cfg.DemoMode)
	assert.False(t, cfg.RequireInvite)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/centsible")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("REQUIRE_INVITE", "1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.DemoMode)
	assert.True(t, cfg.RequireInvite)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "not-a-bool")
	assert.True(t, getEnvBool("FLAG", true), "garbage falls back to default")

	t.Setenv("FLAG", "false")
	assert.False(t, getEnvBool("FLAG", true))
}
