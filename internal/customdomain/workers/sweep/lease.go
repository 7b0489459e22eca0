package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultLeaseKey is shared by every replica.
const DefaultLeaseKey = "whitelabel:sweep:lease"

// RedisLease is a SET NX PX lease. It is never released early: holding it
// for slightly less than the interval keeps other replicas from sweeping the
// same batch right after.
type RedisLease struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
	owner  string
}

func NewRedisLease(client redis.Cmdable, key string, ttl time.Duration) *RedisLease {
	if key == "" {
		key = DefaultLeaseKey
	}
	return &RedisLease{client: client, key: key, ttl: ttl, owner: uuid.NewString()}
}

func (l *RedisLease) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.owner, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", l.key, err)
	}
	return ok, nil
}
