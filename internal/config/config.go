package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	LogLevel       string
	LogFormat      string
	StoreDriver    string
	DBPath         string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	PostgresDSN    string
	CatalogPath    string
	MaxHearts      int
	StreakTimezone string
	LearnerID      string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the tool still runs when .env is absent.
	_ = godotenv.Load()

	return Config{
		LogLevel:       envOr("LOG_LEVEL", "WARN"),
		LogFormat:      envOr("LOG_FORMAT", "text"),
		StoreDriver:    envOr("STORE_DRIVER", DriverSQLite),
		DBPath:         envOr("DB_PATH", "file:lingualearn.db"),
		RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envIntOr("REDIS_DB", 0),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		MaxHearts:      envIntOr("MAX_HEARTS", 5),
		StreakTimezone: envOr("STREAK_TIMEZONE", "Local"),
		LearnerID:      envOr("LEARNER_ID", "default"),
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	switch c.StoreDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH cannot be empty"))
		}
	case DriverMemory:
	case DriverRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR cannot be empty"))
		}
		if c.RedisDB < 0 {
			errs = append(errs, fmt.Errorf("REDIS_DB must be non-negative, got %d", c.RedisDB))
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN cannot be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be sqlite, memory, redis or postgres, got %q", c.StoreDriver))
	}

	if c.MaxHearts < 1 {
		errs = append(errs, fmt.Errorf("MAX_HEARTS must be at least 1, got %d", c.MaxHearts))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("STREAK_TIMEZONE: %w", err))
	}
	if strings.TrimSpace(c.LearnerID) == "" {
		errs = append(errs, errors.New("LEARNER_ID cannot be empty"))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			errs = append(errs, fmt.Errorf("CATALOG_PATH: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Location resolves the time zone in which study days are counted.
func (c Config) Location() (*time.Location, error) {
	if c.StreakTimezone == "" || c.StreakTimezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.StreakTimezone)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
