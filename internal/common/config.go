package common

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Ledger LedgerConfig
	Log    LogConfig
}

// LedgerConfig holds settings for the ledger REST backend
type LedgerConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	RecentRecords int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level slog.Level
	JSON  bool
}

// LoadConfig loads configuration from the environment. Values from a .env file
// in the working directory are applied first without overriding real env vars.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewAppError("CONFIG_ERROR", "cannot read .env file", err)
	}
	return &Config{
		Ledger: LedgerConfig{
			BaseURL:       strings.TrimRight(getEnv("LEDGER_BASE_URL", "http://localhost:8080"), "/"),
			Token:         getEnv("LEDGER_TOKEN", ""),
			Timeout:       getEnvAsDuration("LEDGER_TIMEOUT", 15*time.Second),
			RecentRecords: getEnvAsInt("LEDGER_RECENT_RECORDS", 10),
		},
		Log: LogConfig{
			Level: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
			JSON:  getEnvAsBool("LOG_JSON", false),
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(value)); err == nil {
			return lvl
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Ledger.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "LEDGER_BASE_URL is required", ErrInvalidInput)
	}
	u, err := url.Parse(c.Ledger.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewAppError("CONFIG_ERROR", "LEDGER_BASE_URL must be an http(s) URL", ErrInvalidInput)
	}
	if c.Ledger.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "LEDGER_TIMEOUT must be positive", ErrInvalidInput)
	}
	if c.Ledger.RecentRecords <= 0 {
		return NewAppError("CONFIG_ERROR", "LEDGER_RECENT_RECORDS must be positive", ErrInvalidInput)
	}
	return nil
}
