package redisstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"coachdesk/internal/infra"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// FixedWindowLimiter counts hits per key in clock-aligned windows.
type FixedWindowLimiter struct {
	rdb   redis.Cmdable
	clock clock.Clock
}

func NewFixedWindowLimiter(rdb redis.Cmdable, clk clock.Clock) *FixedWindowLimiter {
	return &FixedWindowLimiter{rdb: rdb, clock: clk}
}

// Allow records a hit for key and reports whether it is within limit for the current window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (shared.RateDecision, error) {
	if limit <= 0 || window <= 0 {
		return shared.RateDecision{Allowed: true}, nil
	}

	now := l.clock.Now()
	windowStart := now.Truncate(window)
	resetIn := windowStart.Add(window).Sub(now)
	redisKey := WindowKey(key, windowStart)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, window+time.Second)
		return nil
	})
	if err != nil {
		return shared.RateDecision{}, infra.WrapRepoErr("rate limit counter failed", err, infra.KindUpstream)
	}

	count := int(incr.Val())
	if count > limit {
		return shared.RateDecision{Allowed: false, RetryAfter: resetIn}, nil
	}
	return shared.RateDecision{Allowed: true, Remaining: limit - count}, nil
}

// WindowKey hashes the caller key so raw client addresses never land in Redis.
func WindowKey(key string, windowStart time.Time) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s%s:%d", rateLimitPrefix, hex.EncodeToString(sum[:12]), windowStart.Unix())
}
