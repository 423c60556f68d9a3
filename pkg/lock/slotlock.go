package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlotLocker serializes the availability-check-then-insert sequence for a
// single slot. Acquire returns ok=false when another request holds the slot.
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// release token must match, so an expired lock re-acquired by another
// request is never deleted by the first holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implements SlotLocker with a TTL'd SETNX key per slot.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	token := uuid.New().String()
	lockKey := fmt.Sprintf("slotlock:%s", key)

	ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire slot lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		_, _ = releaseScript.Run(context.Background(), l.client, []string{lockKey}, token).Result()
	}

	return release, true, nil
}

// NoopLocker is used when redis is not configured. The database's partial
// unique index on active bookings remains the last line of defense.
type NoopLocker struct{}

func (NoopLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	return func() {}, true, nil
}
