// Package config loads runtime configuration for the authflow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. AUTHFLOW_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-s string   session backend (sqlite, redis, memory)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "https://auth.example.com",
//	  "api_prefix": "api/users/",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "resend_cooldown": "2m",
//	  "session_backend": "redis",
//	  "redis_addr": "localhost:6379",
//	  "redis_db": 1,
//	  "log_level": "debug",
//	  "log_backend": "zerolog"
//	}
//
// # Environment
//
// AUTHFLOW_SERVER_URL, AUTHFLOW_API_PREFIX, AUTHFLOW_REQUEST_TIMEOUT,
// AUTHFLOW_ONLINE_CHECK_INTERVAL, AUTHFLOW_RESEND_COOLDOWN,
// AUTHFLOW_SESSION_BACKEND, AUTHFLOW_SESSION_DB, AUTHFLOW_REDIS_ADDR,
// AUTHFLOW_REDIS_DB, AUTHFLOW_REDIS_PREFIX, AUTHFLOW_LOG_LEVEL and
// AUTHFLOW_LOG_BACKEND. Durations use time.ParseDuration syntax.
package config
