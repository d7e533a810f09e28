// Package bootstrap opens the configured store for the commands.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fitlog/internal/config"
	"example.com/fitlog/internal/persistence"
	pgstore "example.com/fitlog/internal/persistence/postgres"
	redisstore "example.com/fitlog/internal/persistence/redis"
	"example.com/fitlog/internal/persistence/sqlite"
)

// OpenStore connects the store named by cfg.StoreDriver. The returned close
// function releases it.
func OpenStore(ctx context.Context, cfg config.Config) (persistence.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.DriverRedis:
		store, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis %s: %w", cfg.RedisAddr, err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		store := pgstore.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("prepare postgres schema: %w", err)
		}
		return store, pool.Close, nil

	case config.DriverMemory:
		return persistence.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
