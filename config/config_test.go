package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"SERVER_HOST", "SERVER_PORT", "TRUST_PROXY",
	"DATABASE_DRIVER", "DATABASE_PATH", "DATABASE_URL",
	"JWT_SECRET", "JWT_EXPIRY_HOURS", "BCRYPT_COST",
	"RATE_LIMIT_BACKEND", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_MINUTES",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"FRONTEND_URL", "LOG_LEVEL", "LOG_FORMAT",
}

// cleanEnv, çalışan ortamdaki değerlerin teste sızmasını engeller.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.False(t, cfg.Server.TrustProxy)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/kushauth.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, RateLimitMemory, cfg.RateLimit.Backend)
	assert.Equal(t, 10, cfg.RateLimit.Max)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_Overrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/auth")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("RATE_LIMIT_BACKEND", "redis")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("RATE_LIMIT_WINDOW_MINUTES", "1")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("FRONTEND_URL", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.True(t, cfg.Server.TrustProxy)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, RateLimitRedis, cfg.RateLimit.Backend)
	assert.Equal(t, 3, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 4, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"bad port", map[string]string{"SERVER_PORT": "http"}, "SERVER_PORT"},
		{"port range", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"bad bool", map[string]string{"TRUST_PROXY": "maybe"}, "TRUST_PROXY"},
		{"zero expiry", map[string]string{"JWT_EXPIRY_HOURS": "0"}, "JWT_EXPIRY_HOURS"},
		{"zero limit", map[string]string{"RATE_LIMIT_MAX": "0"}, "RATE_LIMIT_MAX"},
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mysql"}, "DATABASE_DRIVER"},
		{"postgres without url", map[string]string{"DATABASE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"unknown backend", map[string]string{"RATE_LIMIT_BACKEND": "memcached"}, "RATE_LIMIT_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
