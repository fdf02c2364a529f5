// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes the Telegram token,
// Redis connection parameters, ops-server settings, logging, rate limiting,
// and observability.
//
// A .env file in the working directory is honored (via godotenv) so local
// runs match the deployment contract: everything is environment-supplied.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RedisConfig defines the store connection parameters. The store is the one
// true stateful component: its absence at startup is fatal to the process.
type RedisConfig struct {
	Host        string        // REDIS_HOST
	Port        int           // REDIS_PORT
	DB          int           // REDIS_DB (logical database index)
	Password    string        // REDIS_PASSWORD (empty when auth is off)
	DialTimeout time.Duration // REDIS_DIAL_TIMEOUT
	OpTimeout   time.Duration // REDIS_OP_TIMEOUT (per-call read/write timeout)
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Telegram
	BotToken string // TELEGRAM_BOT_TOKEN (required; from BotFather)

	// Store
	Redis RedisConfig

	// Ops HTTP server (healthz / metrics / day summary)
	OpsPort           string        // OPS_PORT, just the number
	ReadTimeout       time.Duration // READ_TIMEOUT
	ReadHeaderTimeout time.Duration // READ_HEADER_TIMEOUT
	WriteTimeout      time.Duration // WRITE_TIMEOUT
	IdleTimeout       time.Duration // IDLE_TIMEOUT
	GinMode           string        // GIN_MODE: debug|release|test

	// Logging
	LogLevel  string // LOG_LEVEL: debug|info|warn|error|fatal|panic
	LogPretty bool   // LOG_PRETTY: pretty console logs in dev

	// Per-user command rate limiting
	RateRPS   float64 // RATE_RPS (tokens per second, >= 0)
	RateBurst int     // RATE_BURST (bucket size, >= 1)

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from the environment (after merging an optional
// .env file), applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	// Best effort: a missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		BotToken: getenv("TELEGRAM_BOT_TOKEN", ""),

		Redis: RedisConfig{
			Host:        getenv("REDIS_HOST", "localhost"),
			Port:        getint("REDIS_PORT", 6379),
			DB:          getint("REDIS_DB", 0),
			Password:    getenv("REDIS_PASSWORD", ""),
			DialTimeout: getdur("REDIS_DIAL_TIMEOUT", 5*time.Second),
			OpTimeout:   getdur("REDIS_OP_TIMEOUT", 3*time.Second),
		},

		OpsPort:           getenv("OPS_PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		RateRPS:   getfloat("RATE_RPS", 1.0),
		RateBurst: getint("RATE_BURST", 3),

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "tech-pizza-delivery-waiter-bot"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	if strings.TrimSpace(cfg.BotToken) == "" {
		return cfg, errors.New("TELEGRAM_BOT_TOKEN must be set")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Redis.Host) == "" {
		return cfg, errors.New("REDIS_HOST must not be empty")
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return cfg, errors.New("REDIS_PORT must be a valid TCP port")
	}
	if cfg.Redis.DB < 0 {
		return cfg, errors.New("REDIS_DB must be >= 0")
	}
	if cfg.Redis.DialTimeout <= 0 || cfg.Redis.OpTimeout <= 0 {
		return cfg, errors.New("redis timeouts must be positive durations")
	}
	if strings.TrimSpace(cfg.OpsPort) == "" {
		return cfg, errors.New("OPS_PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
