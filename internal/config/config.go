package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the server settings read from the environment.
type Config struct {
	HTTPAddr          string
	WebDir            string
	LogLevel          slog.Level
	TelemetryEnabled  bool
	TelemetryStdout   bool
	OtelCollectorAddr string
	ServiceName       string
	ServiceVersion    string
}

// Load reads the configuration from environment variables, falling back to
// defaults for unset ones.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		WebDir:            getEnv("WEB_DIR", "./web"),
		OtelCollectorAddr: getEnv("OTEL_COLLECTOR_ADDR", "otel-collector:4317"),
		ServiceName:       getEnv("SERVICE_NAME", "tic-tac-toe"),
		ServiceVersion:    getEnv("SERVICE_VERSION", "v0.1.0"),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "debug")); err != nil {
		return nil, err
	}
	if cfg.TelemetryEnabled, err = parseBool("TELEMETRY_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.TelemetryStdout, err = parseBool("TELEMETRY_STDOUT", false); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func parseLevel(v string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
	}
	return level, nil
}
