package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups logging and metrics configuration.
type ObservabilityConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPath    string `env:"METRICS_PATH"    envDefault:"/metrics"`
	// MetricsAddr serves metrics on their own listener for scrapers. When
	// empty they are mounted on the main router and need a session.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityConfig) Sanitize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.MetricsPath = strings.TrimSpace(c.MetricsPath)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
	if c.MetricsPath == "" || !strings.HasPrefix(c.MetricsPath, "/") {
		c.MetricsPath = "/metrics"
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c ObservabilityConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
