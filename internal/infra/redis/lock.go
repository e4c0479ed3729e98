package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

var ErrLocked = errors.New("lock is held by another owner")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is an owner-tokened SET NX lock. Only the owner that acquired it can
// release it; an abandoned lock expires after its TTL.
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

func AcquireLock(ctx context.Context, client *redis.Client, key string, ttl time.Duration) (*Lock, error) {
	if client == nil {
		return nil, ErrNoClient
	}
	if key == "" {
		return nil, errors.New("empty lock key")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}

	token := uuid.NewString()
	ok, err := client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{client: client, key: key, token: token}, nil
}

func (l *Lock) Release(ctx context.Context) error {
	if l == nil || l.client == nil {
		return nil
	}
	return releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
}
