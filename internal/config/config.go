package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the settings for the HTTP service mode. CLI runs take
// their options from flags instead and never read the environment.
type Config struct {
	Port string

	// APIKey guards the conversion endpoints when set. Empty means the
	// service runs unauthenticated.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Conversion defaults, overridable per request.
	DefaultDelimiter string
	BufferLines      int

	// Rolling window for the stats endpoint.
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port:   envOr("PORT", "8091"),
		APIKey: os.Getenv("XML2DELIMITER_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultDelimiter: envOr("DEFAULT_DELIMITER", "|"),
		BufferLines:      envInt("BUFFER_LINES", 1000),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.BufferLines <= 0 {
		cfg.BufferLines = 1000
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	if c.DefaultDelimiter == "" {
		return fmt.Errorf("DEFAULT_DELIMITER must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
