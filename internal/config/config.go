// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/observance"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file

	// Authentication
	APIKey string // API key for admin endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calendar defaults, overridable per request
	InIsrael       bool
	ModernHolidays bool
	CalendarMode   calendar.Mode
	Nusach         observance.Nusach

	// Cache warm-up, a standard five-field cron expression. Empty disables it.
	CacheWarmSchedule string

	// Default location for zmanim
	DefaultLatitude      float64
	DefaultLongitude     float64
	DefaultTimezone      string
	CandleLightingOffset time.Duration // before sunset
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []error

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/luach.db")

	// Authentication
	cfg.APIKey = getEnv("API_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// Calendar
	cfg.InIsrael = getEnvBool("IN_ISRAEL", false)
	cfg.ModernHolidays = getEnvBool("MODERN_HOLIDAYS", false)
	mode, err := calendar.ParseMode(getEnv("CALENDAR_MODE", "historical"))
	if err != nil {
		errs = append(errs, fmt.Errorf("CALENDAR_MODE: %w", err))
	}
	cfg.CalendarMode = mode
	nusach, err := observance.ParseNusach(getEnv("NUSACH", string(observance.Ashkenaz)))
	if err != nil {
		errs = append(errs, fmt.Errorf("NUSACH: %w", err))
	}
	cfg.Nusach = nusach

	cfg.CacheWarmSchedule = os.Getenv("CACHE_WARM_SCHEDULE")

	// Zmanim defaults to Jerusalem
	cfg.DefaultLatitude = getEnvFloat("DEFAULT_LATITUDE", 31.778)
	cfg.DefaultLongitude = getEnvFloat("DEFAULT_LONGITUDE", 35.2354)
	cfg.DefaultTimezone = getEnv("DEFAULT_TIMEZONE", "Asia/Jerusalem")
	cfg.CandleLightingOffset = time.Duration(getEnvInt("CANDLE_LIGHTING_OFFSET", 18)) * time.Minute

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	// Validate environment
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	// Validate database path is set
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	// Validate log level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	// Validate log format
	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	// Validate cron schedule
	if c.CacheWarmSchedule != "" {
		if _, err := cron.ParseStandard(c.CacheWarmSchedule); err != nil {
			errs = append(errs, fmt.Errorf("CACHE_WARM_SCHEDULE %q: %w", c.CacheWarmSchedule, err))
		}
	}

	// Validate location
	if c.DefaultLatitude < -90 || c.DefaultLatitude > 90 {
		errs = append(errs, fmt.Errorf("DEFAULT_LATITUDE must be between -90 and 90, got %g", c.DefaultLatitude))
	}
	if c.DefaultLongitude < -180 || c.DefaultLongitude > 180 {
		errs = append(errs, fmt.Errorf("DEFAULT_LONGITUDE must be between -180 and 180, got %g", c.DefaultLongitude))
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", c.DefaultTimezone, err))
	}
	if c.CandleLightingOffset < 0 || c.CandleLightingOffset > time.Hour {
		errs = append(errs, fmt.Errorf("CANDLE_LIGHTING_OFFSET must be between 0 and 60 minutes, got %s", c.CandleLightingOffset))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Location returns the configured default time zone.
// Validate has already checked that it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat reads an environment variable as a float with a default fallback.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool reads an environment variable as a boolean with a default fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
