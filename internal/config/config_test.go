package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORE_DRIVER", "AUTH_PROVIDER", "REDIS_URL", "ALLOWED_ORIGINS", "REQUEST_TIMEOUT_SECONDS", "RECONCILE_INTERVAL_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, StoreFirestore, cfg.StoreDriver)
	assert.Equal(t, AuthFirebase, cfg.AuthProvider)
	assert.Empty(t, cfg.RedisURL)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Zero(t, cfg.ReconcileInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreMemory)
	t.Setenv("AUTH_PROVIDER", AuthJWT)
	t.Setenv("AUTH_CHECK_REVOKED", "true")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("MAX_DB_CONNS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, ,http://localhost:3000")

	cfg := Load()
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, AuthJWT, cfg.AuthProvider)
	assert.True(t, cfg.AuthCheckRevoked)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.EqualValues(t, 16, cfg.MaxDBConns)
	assert.Equal(t, []string{"https://admin.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "idem:u1:POST:/api/admin/institutions:a%3Ab",
		CacheKey.IdempotencyKey("u1", "POST", "/api/admin/institutions", "a:b"))
	assert.Equal(t, "admin:events", CacheKey.AdminEventsChannel())
}
