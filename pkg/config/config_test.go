package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local ,")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.DefaultTTL)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.AllowedOrigins)
}

func TestGetEnvDuration_Invalid(t *testing.T) {
	t.Setenv("SOME_TTL", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("SOME_TTL", time.Minute))
}
