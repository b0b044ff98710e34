package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.RedisDB = 5

	l := envconfig.MapLookuper(map[string]string{
		"SERVER_URL":      "https://env.example",
		"REQUEST_TIMEOUT": "7s",
		"RESEND_COOLDOWN": "30s",
		"SESSION_BACKEND": "redis",
		"REDIS_DB":        "0",
		"LOG_BACKEND":     "zerolog",
	})
	require.NoError(t, parseEnv(context.Background(), cfg, l))

	assert.Equal(t, "https://env.example", cfg.ServerBaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.ResendCooldown)
	assert.Equal(t, SessionRedis, cfg.SessionBackend)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "zerolog", cfg.LogBackend)
	assert.Equal(t, "api/users/", cfg.APIPrefix, "unset variables keep defaults")
}

func TestParseEnv_UnsetRedisDBKeepsValue(t *testing.T) {
	cfg := &Config{RedisDB: 4}
	require.NoError(t, parseEnv(context.Background(), cfg, envconfig.MapLookuper(nil)))
	assert.Equal(t, 4, cfg.RedisDB)
}

func TestParseEnv_BadDuration(t *testing.T) {
	l := envconfig.MapLookuper(map[string]string{"REQUEST_TIMEOUT": "soon"})
	require.Error(t, parseEnv(context.Background(), &Config{}, l))
}

func TestParseEnv_Prefix(t *testing.T) {
	t.Setenv("AUTHFLOW_API_PREFIX", "api/auth/")
	cfg := &Config{}
	require.NoError(t, parseEnv(context.Background(), cfg, osLookuper()))
	assert.Equal(t, "api/auth/", cfg.APIPrefix)
}
