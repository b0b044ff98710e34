package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authflow/internal/flagx"
	"github.com/dmitrijs2005/authflow/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration, so they may be strings like "3s" or integer nanoseconds.
// RedisDB is a pointer because 0 is a meaningful value.
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	APIPrefix           string         `json:"api_prefix"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	ResendCooldown      timex.Duration `json:"resend_cooldown"`
	SessionBackend      string         `json:"session_backend"`
	SessionDBPath       string         `json:"session_db_path"`
	RedisAddr           string         `json:"redis_addr"`
	RedisDB             *int           `json:"redis_db"`
	RedisPrefix         string         `json:"redis_prefix"`
	LogLevel            string         `json:"log_level"`
	LogBackend          string         `json:"log_backend"`
}

// parseJson overlays cfg with the values present in the file named by -c or
// -config. Absent or zero fields keep their current value. Read and decode
// errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.APIPrefix, jc.APIPrefix)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout.Duration)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval.Duration)
	setDuration(&cfg.ResendCooldown, jc.ResendCooldown.Duration)
	setString(&cfg.SessionBackend, jc.SessionBackend)
	setString(&cfg.SessionDBPath, jc.SessionDBPath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
}
