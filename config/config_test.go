package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.DBMaxIdleConns)
	assert.Equal(t, 100, cfg.DBMaxOpenConns)
	assert.Equal(t, "taskboard", cfg.NATSSubjectPrefix)
	assert.True(t, cfg.EventsEnabled)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/tasks.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/tasks.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.DBMaxOpenConns)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestFromDefaults(t *testing.T) {
	cfg := fromDefaults()
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "taskboard.db", cfg.DBPath)
	assert.Equal(t, 1000, cfg.EventPollIntervalMs)
}
