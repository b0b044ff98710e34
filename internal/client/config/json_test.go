package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_base_url":       "https://www.example:9000",
		"online_check_interval": "10s",
		"request_timeout":       int64(2 * time.Second),
		"resend_cooldown":       "1m",
		"redis_db":              0,
		"log_backend":           "zerolog",
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{RedisDB: 3, LogLevel: "info"}
		parseJson(cfg, []string{"-config", pathFlag})

		assert.Equal(t, "https://www.example:9000", cfg.ServerBaseURL)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, time.Minute, cfg.ResendCooldown)
		assert.Equal(t, 0, cfg.RedisDB)
		assert.Equal(t, "zerolog", cfg.LogBackend)
		assert.Equal(t, "info", cfg.LogLevel, "absent fields keep their value")
	})

	t.Run("short flag", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-c", pathFlag})
		assert.Equal(t, "https://www.example:9000", cfg.ServerBaseURL)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := &Config{
			ServerBaseURL:       "http://defaults:1234",
			OnlineCheckInterval: 42 * time.Second,
		}
		parseJson(cfg, []string{"-a", "x"})

		assert.Equal(t, "http://defaults:1234", cfg.ServerBaseURL)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-config", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
