package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults tests that all default values load correctly.
func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{"PROVIDER_BASE_URL": "http://provider.local"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port, "default server port")
	assert.Equal(t, "10s", cfg.Server.ReadTimeout.String(), "default read timeout")
	assert.Equal(t, "35s", cfg.Server.WriteTimeout.String(), "default write timeout")

	assert.Equal(t, "http://provider.local", cfg.Provider.BaseURL)
	assert.Equal(t, "30s", cfg.Provider.Timeout.String(), "default provider timeout")
	assert.Equal(t, 0.0, cfg.Provider.RequestsPerSecond, "rate limiting off by default")

	assert.Empty(t, cfg.Redis.Addr, "cache off by default")
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, "5m0s", cfg.Redis.TTL.String(), "default cache TTL")

	assert.Equal(t, "12s", cfg.Calendar.Watchdog.String(), "default calendar watchdog")

	assert.Equal(t, "info", cfg.Logging.Level, "default log level")
	assert.Equal(t, "json", cfg.Logging.Format, "default log format")
	assert.Equal(t, "development", cfg.App.Env, "default app environment")
}

// TestLoad_EnvironmentOverrides tests that environment variables override defaults.
func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{
		"SERVER_PORT":          "3000",
		"SERVER_READ_TIMEOUT":  "30s",
		"SERVER_WRITE_TIMEOUT": "1m",
		"PROVIDER_BASE_URL":    "https://gds.example.com/api",
		"PROVIDER_TIMEOUT":     "20s",
		"PROVIDER_RPS":         "5",
		"REDIS_ADDR":           "localhost:6379",
		"REDIS_TTL":            "10m",
		"CALENDAR_WATCHDOG":    "8s",
		"LOG_LEVEL":            "debug",
		"LOG_FORMAT":           "console",
		"APP_ENV":              "production",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://gds.example.com/api", cfg.Provider.BaseURL)
	assert.Equal(t, "20s", cfg.Provider.Timeout.String())
	assert.Equal(t, 5.0, cfg.Provider.RequestsPerSecond)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, "10m0s", cfg.Redis.TTL.String())
	assert.Equal(t, "8s", cfg.Calendar.Watchdog.String())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "production", cfg.App.Env)
	assert.True(t, cfg.IsProduction())
}

// TestLoad_MissingProviderURL tests that the provider URL is required.
func TestLoad_MissingProviderURL(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_BASE_URL")
	assert.Nil(t, cfg)
}

// TestLoad_Validation tests invalid values are rejected with clear messages.
func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
		errMsg string
	}{
		{"port zero", "SERVER_PORT", "0", "SERVER_PORT must be between 1 and 65535"},
		{"port too high", "SERVER_PORT", "65536", "SERVER_PORT must be between 1 and 65535"},
		{"zero read timeout", "SERVER_READ_TIMEOUT", "0s", "SERVER_READ_TIMEOUT must be positive"},
		{"zero write timeout", "SERVER_WRITE_TIMEOUT", "0s", "SERVER_WRITE_TIMEOUT must be positive"},
		{"zero provider timeout", "PROVIDER_TIMEOUT", "0s", "PROVIDER_TIMEOUT must be positive"},
		{"negative rps", "PROVIDER_RPS", "-1", "PROVIDER_RPS must not be negative"},
		{"zero cache ttl", "REDIS_TTL", "0s", "REDIS_TTL must be positive"},
		{"zero watchdog", "CALENDAR_WATCHDOG", "0s", "CALENDAR_WATCHDOG must be positive"},
		{"bad log level", "LOG_LEVEL", "trace", "LOG_LEVEL must be one of"},
		{"bad log format", "LOG_FORMAT", "text", "LOG_FORMAT must be one of"},
		{"bad app env", "APP_ENV", "local", "APP_ENV must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{
				"PROVIDER_BASE_URL": "http://provider.local",
				tt.envVar:           tt.value,
			})

			cfg, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, cfg)
		})
	}
}

// TestLoad_Validation_WriteTimeoutCoversProvider tests that the server write
// timeout must exceed the provider timeout.
func TestLoad_Validation_WriteTimeoutCoversProvider(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{
		"PROVIDER_BASE_URL":    "http://provider.local",
		"PROVIDER_TIMEOUT":     "30s",
		"SERVER_WRITE_TIMEOUT": "30s",
	})

	cfg, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_WRITE_TIMEOUT")
	assert.Contains(t, err.Error(), "should be greater than")
	assert.Nil(t, cfg)
}

// TestMustLoad_Panic tests MustLoad panics on invalid config.
func TestMustLoad_Panic(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{
		"PROVIDER_BASE_URL": "http://provider.local",
		"SERVER_PORT":       "0",
	})

	assert.Panics(t, func() {
		MustLoad()
	})
}

// TestMustLoad_Success tests MustLoad with valid config.
func TestMustLoad_Success(t *testing.T) {
	clearEnvVars(t)
	setEnvVars(t, map[string]string{"PROVIDER_BASE_URL": "http://provider.local"})

	assert.NotPanics(t, func() {
		cfg := MustLoad()
		assert.NotNil(t, cfg)
	})
}

// Helper functions

// clearEnvVars clears all config-related environment variables.
func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVER_PORT",
		"SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT",
		"PROVIDER_BASE_URL",
		"PROVIDER_TIMEOUT",
		"PROVIDER_RPS",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"REDIS_TTL",
		"CALENDAR_WATCHDOG",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"APP_ENV",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

// setEnvVars sets multiple environment variables.
func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		os.Setenv(k, v)
	}
}
