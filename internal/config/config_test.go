package config

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/zapponejosh/luach-api/internal/calendar"
	"github.com/zapponejosh/luach-api/internal/observance"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	// Check defaults are applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.CalendarMode != calendar.ModeHistorical {
		t.Errorf("CalendarMode = %v, want %v", cfg.CalendarMode, calendar.ModeHistorical)
	}
	if cfg.InIsrael {
		t.Error("InIsrael = true, want false")
	}
	if cfg.CandleLightingOffset != 18*time.Minute {
		t.Errorf("CandleLightingOffset = %s, want 18m", cfg.CandleLightingOffset)
	}
	if cfg.DefaultTimezone != "Asia/Jerusalem" {
		t.Errorf("DefaultTimezone = %q, want %q", cfg.DefaultTimezone, "Asia/Jerusalem")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	// Set custom values
	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("API_KEY", "secret-key-123")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("IN_ISRAEL", "true")
	os.Setenv("MODERN_HOLIDAYS", "1")
	os.Setenv("CALENDAR_MODE", "proleptic")
	os.Setenv("NUSACH", "sefard")
	os.Setenv("CACHE_WARM_SCHEDULE", "0 3 * * *")
	os.Setenv("DEFAULT_LATITUDE", "40.7128")
	os.Setenv("DEFAULT_LONGITUDE", "-74.006")
	os.Setenv("DEFAULT_TIMEZONE", "America/New_York")
	os.Setenv("CANDLE_LIGHTING_OFFSET", "40")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if !cfg.InIsrael || !cfg.ModernHolidays {
		t.Errorf("InIsrael = %v, ModernHolidays = %v, want both true", cfg.InIsrael, cfg.ModernHolidays)
	}
	if cfg.CalendarMode != calendar.ModeProleptic {
		t.Errorf("CalendarMode = %v, want %v", cfg.CalendarMode, calendar.ModeProleptic)
	}
	if cfg.Nusach != observance.Sefard {
		t.Errorf("Nusach = %q, want %q", cfg.Nusach, observance.Sefard)
	}
	if cfg.CacheWarmSchedule != "0 3 * * *" {
		t.Errorf("CacheWarmSchedule = %q", cfg.CacheWarmSchedule)
	}
	if cfg.DefaultLongitude != -74.006 {
		t.Errorf("DefaultLongitude = %g, want -74.006", cfg.DefaultLongitude)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("Location() = %s, want America/New_York", cfg.Location())
	}
	if cfg.CandleLightingOffset != 40*time.Minute {
		t.Errorf("CandleLightingOffset = %s, want 40m", cfg.CandleLightingOffset)
	}
}

func TestLoad_InvalidCalendarMode(t *testing.T) {
	clearEnv()
	os.Setenv("CALENDAR_MODE", "mayan")
	os.Setenv("NUSACH", "unknown")
	defer clearEnv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded, want error")
	}
	if !errors.Is(err, calendar.ErrInvalidArgument) {
		t.Errorf("Load() error = %v, want it to wrap ErrInvalidArgument", err)
	}
	for _, name := range []string{"CALENDAR_MODE", "NUSACH"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Load() error %q does not mention %s", err, name)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	// Table-driven tests for validation
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid development config",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				APIKey:       "", // OK in development
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: false,
		},
		{
			name: "valid production config",
			config: Config{
				Port:         8080,
				Env:          EnvProduction,
				DatabasePath: "/data/luach.db",
				APIKey:       "required-in-prod",
				LogLevel:     "info",
				LogFormat:    "json",
			},
			wantErr: false,
		},
		{
			name: "production requires API key",
			config: Config{
				Port:         8080,
				Env:          EnvProduction,
				DatabasePath: "/data/luach.db",
				APIKey:       "", // Missing!
				LogLevel:     "info",
				LogFormat:    "json",
			},
			wantErr: true,
		},
		{
			name: "invalid port - too low",
			config: Config{
				Port:         0,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid port - too high",
			config: Config{
				Port:         70000,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid environment",
			config: Config{
				Port:         8080,
				Env:          "invalid",
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "verbose", // Not valid
				LogFormat:    "text",
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "./data/test.db",
				LogLevel:     "info",
				LogFormat:    "xml", // Not valid
			},
			wantErr: true,
		},
		{
			name: "invalid cron schedule",
			config: Config{
				Port:              8080,
				Env:               EnvDevelopment,
				DatabasePath:      "./data/test.db",
				LogLevel:          "info",
				LogFormat:         "text",
				CacheWarmSchedule: "every tuesday",
			},
			wantErr: true,
		},
		{
			name: "invalid latitude",
			config: Config{
				Port:            8080,
				Env:             EnvDevelopment,
				DatabasePath:    "./data/test.db",
				LogLevel:        "info",
				LogFormat:       "text",
				DefaultLatitude: 91,
			},
			wantErr: true,
		},
		{
			name: "unknown time zone",
			config: Config{
				Port:            8080,
				Env:             EnvDevelopment,
				DatabasePath:    "./data/test.db",
				LogLevel:        "info",
				LogFormat:       "text",
				DefaultTimezone: "Mars/Olympus_Mons",
			},
			wantErr: true,
		},
		{
			name: "candle lighting offset too large",
			config: Config{
				Port:                 8080,
				Env:                  EnvDevelopment,
				DatabasePath:         "./data/test.db",
				LogLevel:             "info",
				LogFormat:            "text",
				CandleLightingOffset: 2 * time.Hour,
			},
			wantErr: true,
		},
		{
			name: "empty database path",
			config: Config{
				Port:         8080,
				Env:          EnvDevelopment,
				DatabasePath: "",
				LogLevel:     "info",
				LogFormat:    "text",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT",
		"IN_ISRAEL", "MODERN_HOLIDAYS", "CALENDAR_MODE", "NUSACH",
		"CACHE_WARM_SCHEDULE", "DEFAULT_LATITUDE", "DEFAULT_LONGITUDE",
		"DEFAULT_TIMEZONE", "CANDLE_LIGHTING_OFFSET",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
