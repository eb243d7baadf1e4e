package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		LogLevel:       "INFO",
		LogFormat:      "text",
		StoreDriver:    config.DriverSQLite,
		DBPath:         "test.db",
		MaxHearts:      5,
		StreakTimezone: "UTC",
		LearnerID:      "default",
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_StoreDrivers(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *config.Config)
		expectedError string
	}{
		{"sqlite without path", func(c *config.Config) { c.DBPath = "" }, "DB_PATH cannot be empty"},
		{"redis without addr", func(c *config.Config) { c.StoreDriver = config.DriverRedis; c.RedisAddr = "" }, "REDIS_ADDR"},
		{"redis negative db", func(c *config.Config) { c.StoreDriver = config.DriverRedis; c.RedisAddr = "x:1"; c.RedisDB = -1 }, "REDIS_DB"},
		{"postgres without dsn", func(c *config.Config) { c.StoreDriver = config.DriverPostgres }, "POSTGRES_DSN"},
		{"unknown driver", func(c *config.Config) { c.StoreDriver = "bolt" }, "STORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MemoryNeedsNothing(t *testing.T) {
	cfg := validConfig()
	cfg.StoreDriver = config.DriverMemory
	cfg.DBPath = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel:       "LOUD",
		LogFormat:      "xml",
		StoreDriver:    config.DriverSQLite,
		MaxHearts:      0,
		StreakTimezone: "Mars/Olympus",
		CatalogPath:    "testdata/missing.yaml",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "LOG_FORMAT")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "MAX_HEARTS")
	assert.Contains(t, errStr, "STREAK_TIMEZONE")
	assert.Contains(t, errStr, "LEARNER_ID")
	assert.Contains(t, errStr, "CATALOG_PATH")
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	cfg.StreakTimezone = "Local"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("MAX_HEARTS", "3")
	t.Setenv("LEARNER_ID", "ana")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 3, cfg.MaxHearts)
	assert.Equal(t, "ana", cfg.LearnerID)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "file:lingualearn.db", cfg.DBPath)
}
