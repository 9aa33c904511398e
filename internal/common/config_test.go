package common

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"LEDGER_BASE_URL", "LEDGER_TOKEN", "LEDGER_TIMEOUT", "LEDGER_RECENT_RECORDS", "LOG_LEVEL", "LOG_JSON"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Ledger.BaseURL)
	assert.Equal(t, "", cfg.Ledger.Token)
	assert.Equal(t, 15*time.Second, cfg.Ledger.Timeout)
	assert.Equal(t, 10, cfg.Ledger.RecentRecords)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("LEDGER_BASE_URL", "https://tesoreria.example.com/api/")
	t.Setenv("LEDGER_TOKEN", "secret")
	t.Setenv("LEDGER_TIMEOUT", "3s")
	t.Setenv("LEDGER_RECENT_RECORDS", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_JSON", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://tesoreria.example.com/api", cfg.Ledger.BaseURL)
	assert.Equal(t, "secret", cfg.Ledger.Token)
	assert.Equal(t, 3*time.Second, cfg.Ledger.Timeout)
	assert.Equal(t, 25, cfg.Ledger.RecentRecords)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("LEDGER_BASE_URL", "")
	t.Setenv("LEDGER_TIMEOUT", "soon")
	t.Setenv("LEDGER_RECENT_RECORDS", "many")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_JSON", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Ledger.Timeout)
	assert.Equal(t, 10, cfg.Ledger.RecentRecords)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadConfig_DotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LEDGER_TOKEN=from-file\nLEDGER_RECENT_RECORDS=5\n"), 0o600))
	t.Chdir(dir)

	t.Setenv("LEDGER_TOKEN", "from-env")
	// only unset variables are taken from the file; t.Setenv restores it afterwards
	t.Setenv("LEDGER_RECENT_RECORDS", "")
	require.NoError(t, os.Unsetenv("LEDGER_RECENT_RECORDS"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Ledger.Token)
	assert.Equal(t, 5, cfg.Ledger.RecentRecords)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Ledger: LedgerConfig{BaseURL: "http://localhost:8080", Timeout: time.Second, RecentRecords: 10}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Ledger.BaseURL = "" }},
		{"no scheme", func(c *Config) { c.Ledger.BaseURL = "localhost:8080" }},
		{"ftp", func(c *Config) { c.Ledger.BaseURL = "ftp://host" }},
		{"zero timeout", func(c *Config) { c.Ledger.Timeout = 0 }},
		{"zero recent", func(c *Config) { c.Ledger.RecentRecords = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, "CONFIG_ERROR", CodeOf(err))
		})
	}
}
