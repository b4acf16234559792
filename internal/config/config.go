// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ironsheep/content-box-mcp/internal/logging"
)

// Config holds server configuration
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// DefaultDPI is the density assumed for sources that do not carry one.
	DefaultDPI float64

	// TargetDPI is the canonical density the pipeline works at.
	TargetDPI float64

	// DebugDir receives diagnostic images when non-empty.
	DebugDir string

	// TimeoutMS bounds a single content box search.
	TimeoutMS int
}

// Load reads envFile (if it exists) into the environment without overriding
// variables that are already set, then builds and validates a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return LoadConfig()
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LogLevel:   getEnvOrDefault("CONTENT_BOX_LOG_LEVEL", "info"),
		DefaultDPI: getEnvAsFloatOrDefault("CONTENT_BOX_DEFAULT_DPI", 300),
		TargetDPI:  getEnvAsFloatOrDefault("CONTENT_BOX_TARGET_DPI", 150),
		DebugDir:   getEnvOrDefault("CONTENT_BOX_DEBUG_DIR", ""),
		TimeoutMS:  getEnvAsIntOrDefault("CONTENT_BOX_TIMEOUT_MS", 60000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("CONTENT_BOX_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}

	if c.DefaultDPI < 10 || c.DefaultDPI > 4800 {
		return fmt.Errorf("CONTENT_BOX_DEFAULT_DPI must be between 10 and 4800, got %g", c.DefaultDPI)
	}

	if c.TargetDPI < 50 || c.TargetDPI > 600 {
		return fmt.Errorf("CONTENT_BOX_TARGET_DPI must be between 50 and 600, got %g", c.TargetDPI)
	}

	if c.TimeoutMS < 100 {
		return fmt.Errorf("CONTENT_BOX_TIMEOUT_MS must be at least 100, got %d", c.TimeoutMS)
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level { return logging.ParseLevel(c.LogLevel) }

// Timeout returns the per-search deadline.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsFloatOrDefault gets environment variable as float64 or returns default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
