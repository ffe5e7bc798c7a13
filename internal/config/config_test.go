package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:            "8080",
		ShutdownTimeout: 5 * time.Second,
		DBPath:          "./data/test.db",
		LogLevel:        "info",
		Currency:        "JPY",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		errorString string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{
			name:        "invalid port - non-numeric",
			modify:      func(c *Config) { c.Port = "abc" },
			errorString: `invalid port "abc": must be a number`,
		},
		{
			name:        "invalid port - out of range",
			modify:      func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			modify:      func(c *Config) { c.DBPath = "" },
			errorString: "database path cannot be empty",
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.LogLevel = "loud" },
			errorString: `unknown log level "loud"`,
		},
		{
			name:        "unsupported currency",
			modify:      func(c *Config) { c.Currency = "XYZ" },
			errorString: `unsupported currency "XYZ"`,
		},
		{
			name:        "zero shutdown timeout",
			modify:      func(c *Config) { c.ShutdownTimeout = 0 },
			errorString: "invalid shutdown timeout 0s: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "0"
	cfg.Currency = "???"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 0")
	assert.Contains(t, err.Error(), "unsupported currency")
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/splitbill.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CURRENCY", "usd")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "/tmp/splitbill.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "USD", cfg.SettlementCurrency().Code)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "CURRENCY", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/splitbill.db", cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, "JPY", cfg.SettlementCurrency().Code)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	assert.Equal(t, 10*time.Second, Load().ShutdownTimeout)
}
