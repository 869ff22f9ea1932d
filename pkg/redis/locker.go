package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "lolanalyzer:lock:"

// ErrLockHeld is returned when another instance owns the lock.
var ErrLockHeld = errors.New("lock is held by another instance")

// Delete the key only if the token still matches, so an expired lock taken by
// another instance is never released by us.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker keeps scheduled jobs from running on more than one instance.
type Locker struct {
	client *RedisClient
	ttl    time.Duration
}

var _ gocron.Locker = (*Locker)(nil)

// NewLocker creates the locker, the ttl must outlast a full job run.
func NewLocker(client *RedisClient, ttl time.Duration) *Locker {
	return &Locker{
		client: client,
		ttl:    ttl,
	}
}

// Lock tries to acquire the key, it doesn't wait.
func (l *Locker) Lock(ctx context.Context, key string) (gocron.Lock, error) {
	token := uuid.NewString()
	lockKey := lockPrefix + key

	acquired, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("couldn't acquire the lock %s: %w", key, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLockHeld, key)
	}

	return &lock{
		client: l.client,
		key:    lockKey,
		token:  token,
	}, nil
}

type lock struct {
	client *RedisClient
	key    string
	token  string
}

// Unlock releases the key if it's still ours.
func (l *lock) Unlock(ctx context.Context) error {
	return unlockScript.Run(ctx, l.client.Client, []string{l.key}, l.token).Err()
}
