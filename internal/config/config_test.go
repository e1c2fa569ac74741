package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultManager(t *testing.T) *Manager {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	m, err := NewManager()
	require.NoError(t, err)
	return m
}

func TestNewManager_Defaults(t *testing.T) {
	m := newDefaultManager(t)

	cfg := m.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "./data/assessments.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, "./migrations", cfg.Storage.Postgres.MigrationsPath)
	assert.False(t, cfg.Insight.Enabled)
	assert.Equal(t, 1000, cfg.Insight.MaxTokens)
	assert.InDelta(t, 0.1, cfg.Insight.Temperature, 1e-9)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestManager_Validate_Defaults(t *testing.T) {
	m := newDefaultManager(t)
	assert.NoError(t, m.Validate())
}

func TestManager_Validate_InvalidPort(t *testing.T) {
	m := newDefaultManager(t)
	m.config.Server.Port = 0

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestManager_Validate_InvalidDriver(t *testing.T) {
	m := newDefaultManager(t)
	m.config.Storage.Driver = "mongodb"

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage driver")
}

func TestManager_Validate_PostgresRequiresHost(t *testing.T) {
	m := newDefaultManager(t)
	m.config.Storage.Driver = "postgres"
	m.config.Storage.Postgres.Host = ""

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres host is required")
}

func TestManager_Validate_InsightRequiresAPIKey(t *testing.T) {
	m := newDefaultManager(t)
	m.config.Insight.Enabled = true
	m.config.Insight.APIKey = ""

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insight API key is required")
}

func TestManager_Validate_InvalidLogLevel(t *testing.T) {
	m := newDefaultManager(t)
	m.config.Logging.Level = "verbose"

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestManager_EnvironmentOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PREVENTIVE_CARE_SERVER_PORT", "9090")
	t.Setenv("PREVENTIVE_CARE_STORAGE_DRIVER", "postgres")

	m, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, 9090, m.GetServerConfig().Port)
	assert.Equal(t, "postgres", m.GetStorageConfig().Driver)
}
