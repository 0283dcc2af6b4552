// Package redislock provides the per-user checkout advisory lock. Only one
// checkout per user may be in flight; the cart read-then-clear sequence is
// not safe to interleave.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"shop-service/internal/apperr"
)

const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

type UserLock struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewUserLock(client *redis.Client) *UserLock {
	return &UserLock{
		client: client,
		ttl:    10 * time.Second,
		wait:   2 * time.Second,
		retry:  50 * time.Millisecond,
	}
}

// Acquire blocks until the lock is held or the bounded wait expires. The
// returned release func is safe to call after the TTL lapsed; it only deletes
// the key if this caller still owns it.
func (l *UserLock) Acquire(ctx context.Context, userID uint64) (func(), error) {
	key := fmt.Sprintf("checkout:lock:%d", userID)
	owner := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "checkout lock unavailable", err)
		}
		if ok {
			return func() {
				l.client.Eval(context.Background(), releaseScript, []string{key}, owner)
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, apperr.New(apperr.Internal, "checkout lock wait timed out")
		}

		select {
		case <-ctx.Done():
			return nil, apperr.Wrap(apperr.Internal, "checkout cancelled while waiting for lock", ctx.Err())
		case <-time.After(l.retry):
		}
	}
}
