package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "interview-ai:lock:"

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX so concurrent server
// instances share the same leases.
type RedisLocker struct {
	client redis.UniversalClient
}

// NewRedisLocker wraps an existing redis client
func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client}
}

// NewRedisClient creates a client for addr
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// Acquire implements Locker
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &Lease{key: key, token: token, release: r.release}, true, nil
}

func (r *RedisLocker) release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, r.client, []string{keyPrefix + key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis unlock %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection
func (r *RedisLocker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
