package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const envPrefix = "AUTHFLOW_"

// envConfig mirrors Config for go-envconfig. Unset variables leave the zero
// value, which parseEnv skips; RedisDB stays nil unless set.
type envConfig struct {
	ServerBaseURL       string        `env:"SERVER_URL"`
	APIPrefix           string        `env:"API_PREFIX"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	ResendCooldown      time.Duration `env:"RESEND_COOLDOWN"`
	SessionBackend      string        `env:"SESSION_BACKEND"`
	SessionDBPath       string        `env:"SESSION_DB"`
	RedisAddr           string        `env:"REDIS_ADDR"`
	RedisDB             *int          `env:"REDIS_DB, noinit"`
	RedisPrefix         string        `env:"REDIS_PREFIX"`
	LogLevel            string        `env:"LOG_LEVEL"`
	LogBackend          string        `env:"LOG_BACKEND"`
}

func osLookuper() envconfig.Lookuper {
	return envconfig.PrefixLookuper(envPrefix, envconfig.OsLookuper())
}

// parseEnv overlays cfg with the variables l resolves, e.g. AUTHFLOW_SERVER_URL.
func parseEnv(ctx context.Context, cfg *Config, l envconfig.Lookuper) error {
	var ec envConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &ec,
		Lookuper: l,
	}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	setString(&cfg.ServerBaseURL, ec.ServerBaseURL)
	setString(&cfg.APIPrefix, ec.APIPrefix)
	setDuration(&cfg.RequestTimeout, ec.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, ec.OnlineCheckInterval)
	setDuration(&cfg.ResendCooldown, ec.ResendCooldown)
	setString(&cfg.SessionBackend, ec.SessionBackend)
	setString(&cfg.SessionDBPath, ec.SessionDBPath)
	setString(&cfg.RedisAddr, ec.RedisAddr)
	if ec.RedisDB != nil {
		cfg.RedisDB = *ec.RedisDB
	}
	setString(&cfg.RedisPrefix, ec.RedisPrefix)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogBackend, ec.LogBackend)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
