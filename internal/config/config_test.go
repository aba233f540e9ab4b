package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_MODE", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
	assert.Equal(t, "patients", cfg.DynamoTables.Patients)
	assert.Equal(t, "practitioners", cfg.DynamoTables.Practitioners)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Minute, cfg.TokenCacheTTL)
	assert.Equal(t, AuthModePermissive, cfg.AuthMode)
	assert.False(t, cfg.StrictAuth())
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_ProductionDefaultsToStrictAuth(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_MODE", "")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.StrictAuth())
}

func TestLoad_ExplicitAuthModeWins(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_MODE", AuthModePermissive)

	assert.False(t, Load().StrictAuth())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("TOKEN_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()

	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.TokenCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.TrustProxy)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "lots")
	t.Setenv("JWT_EXPIRY", "forever")

	cfg := Load()

	assert.Equal(t, 20, cfg.RateLimitRPS)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
}
