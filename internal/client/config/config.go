package config

import (
	"context"
	"os"
	"time"
)

// Session backends understood by the client.
const (
	SessionSQLite = "sqlite"
	SessionRedis  = "redis"
	SessionMemory = "memory"
)

// Config holds runtime settings for the authflow CLI.
type Config struct {
	ServerBaseURL       string
	APIPrefix           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	ResendCooldown      time.Duration

	SessionBackend string
	SessionDBPath  string
	RedisAddr      string
	RedisDB        int
	RedisPrefix    string

	LogLevel   string
	LogBackend string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3000"
	c.APIPrefix = "api/users/"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.ResendCooldown = 120 * time.Second

	c.SessionBackend = SessionSQLite
	c.SessionDBPath = "authflow.db"
	c.RedisAddr = "localhost:6379"
	c.RedisDB = 0
	c.RedisPrefix = "authflow:"

	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// ResendSeconds is ResendCooldown in whole seconds, at least one.
func (c *Config) ResendSeconds() int {
	s := int(c.ResendCooldown / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), AUTHFLOW_* environment variables and command-line flags.
// Later sources take precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	if err := parseEnv(context.Background(), cfg, osLookuper()); err != nil {
		panic(err)
	}
	parseFlags(cfg, args)
	return cfg
}
