package cli

import (
	"context"
	"fmt"

	"github.com/vytor/lingualearn/internal/config"
	"github.com/vytor/lingualearn/internal/db"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/repository"
	"github.com/vytor/lingualearn/internal/repository/memory"
	"github.com/vytor/lingualearn/internal/repository/postgres"
	"github.com/vytor/lingualearn/internal/repository/redis"
	"github.com/vytor/lingualearn/internal/repository/sqlite"
)

// openStore opens the configured progress store and returns its closer.
func openStore(ctx context.Context, cfg config.Config) (repository.ProgressRepository, func() error, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("opening progress store: driver=%s", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.NewProgressRepository(cfg.MaxHearts), func() error { return nil }, nil

	case config.DriverSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return sqlite.NewProgressRepository(database.DB, cfg.MaxHearts), database.Close, nil

	case config.DriverRedis:
		client, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return redis.NewProgressRepository(client, cfg.MaxHearts), client.Close, nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		closeFn := func() error {
			pool.Close()
			return nil
		}
		return postgres.NewProgressRepository(pool, cfg.MaxHearts), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
