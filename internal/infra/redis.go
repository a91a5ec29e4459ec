package infra

import (
	"context"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the shared client serving both the price cache and the
// mail job queues. Each pool worker parks a connection in BRPOP, so the
// connection pool is sized past the worker count to keep cache reads from
// queueing behind them.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.WorkerPoolSize + 10
	opts.MinIdleConns = 2

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
