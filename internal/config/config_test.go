package config

import (
	"strings"
	"testing"
	"time"
)

// clearBotEnv wipes every variable Load() reads so defaults are observable.
func clearBotEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN",
		"REDIS_HOST", "REDIS_PORT", "REDIS_DB", "REDIS_PASSWORD",
		"REDIS_DIAL_TIMEOUT", "REDIS_OP_TIMEOUT",
		"OPS_PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT",
		"IDLE_TIMEOUT", "GIN_MODE",
		"LOG_LEVEL", "LOG_PRETTY",
		"RATE_RPS", "RATE_BURST",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_SERVICE_NAME",
		"OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWithToken(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != 6379 || cfg.Redis.DB != 0 {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Redis.DialTimeout != 5*time.Second || cfg.Redis.OpTimeout != 3*time.Second {
		t.Fatalf("unexpected redis timeouts: %+v", cfg.Redis)
	}
	if cfg.OpsPort != "8080" || cfg.GinMode != "release" {
		t.Fatalf("unexpected ops defaults: port=%q mode=%q", cfg.OpsPort, cfg.GinMode)
	}
	if cfg.LogLevel != "info" || cfg.LogPretty {
		t.Fatalf("unexpected logging defaults: level=%q pretty=%v", cfg.LogLevel, cfg.LogPretty)
	}
	if cfg.RateRPS != 1.0 || cfg.RateBurst != 3 {
		t.Fatalf("unexpected rate defaults: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.OTEL.Enabled {
		t.Fatal("OTEL must default to disabled")
	}
}

func TestLoad_MissingTokenFails(t *testing.T) {
	clearBotEnv(t)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "TELEGRAM_BOT_TOKEN") {
		t.Fatalf("expected token error, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("REDIS_OP_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", "warning") // normalized to "warn"
	t.Setenv("RATE_RPS", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.Host != "redis.internal" || cfg.Redis.Port != 6380 || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v", cfg.Redis)
	}
	if cfg.Redis.Password != "s3cret" {
		t.Fatalf("password not applied")
	}
	if cfg.Redis.OpTimeout != 750*time.Millisecond {
		t.Fatalf("op timeout = %v; want 750ms", cfg.Redis.OpTimeout)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LOG_LEVEL normalization: got %q; want %q", cfg.LogLevel, "warn")
	}
	if cfg.RateRPS != 0.5 {
		t.Fatalf("RATE_RPS = %v; want 0.5", cfg.RateRPS)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
		frag string
	}{
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"bad redis port", "REDIS_PORT", "99999", "REDIS_PORT"},
		{"negative redis db", "REDIS_DB", "-1", "REDIS_DB"},
		{"zero burst", "RATE_BURST", "0", "RATE_BURST"},
		{"sample ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearBotEnv(t)
			t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.frag) {
				t.Fatalf("expected error mentioning %q, got %v", tc.frag, err)
			}
		})
	}
}

func TestLoad_UnparsableValuesFallBackToDefaults(t *testing.T) {
	clearBotEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("REDIS_PORT", "not-a-number")
	t.Setenv("REDIS_OP_TIMEOUT", "soon")
	t.Setenv("LOG_PRETTY", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.Port != 6379 {
		t.Fatalf("port fallback = %d; want 6379", cfg.Redis.Port)
	}
	if cfg.Redis.OpTimeout != 3*time.Second {
		t.Fatalf("timeout fallback = %v; want 3s", cfg.Redis.OpTimeout)
	}
	if cfg.LogPretty {
		t.Fatal("LOG_PRETTY fallback should be false")
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	clearBotEnv(t)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from MustLoad without a token")
		}
	}()
	MustLoad()
}
