package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coachdesk/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewClient connects and pings Redis.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("redis connected", "addr", cfg.Addr)
	return rdb, nil
}
