package redisstore

import (
	"context"
	"time"

	"coachdesk/internal/infra"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "token:revoked:"

// TokenRevocation is a JWT ID deny-list whose entries expire with the token.
type TokenRevocation struct {
	rdb redis.Cmdable
}

func NewTokenRevocation(rdb redis.Cmdable) *TokenRevocation {
	return &TokenRevocation{rdb: rdb}
}

func (r *TokenRevocation) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := r.rdb.Set(ctx, revokedTokenPrefix+jti, "1", ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to revoke token", err, infra.KindUpstream)
	}
	return nil
}

func (r *TokenRevocation) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := r.rdb.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, infra.WrapRepoErr("failed to check token revocation", err, infra.KindUpstream)
	}
	return n > 0, nil
}
