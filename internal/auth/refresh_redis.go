package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRefreshStore is the production RefreshStore. One key per refresh
// token, value is the bound username, TTL matches the token's lifetime so
// redis expires sessions on its own.
type RedisRefreshStore struct {
	rdb       *redis.Client
	keyPrefix string
}

func NewRedisRefreshStore(rdb *redis.Client) *RedisRefreshStore {
	return &RedisRefreshStore{rdb: rdb, keyPrefix: "auth:refresh:"}
}

// consumeScript reads and deletes the binding in one round trip, so two
// racing rotations of the same token cannot both win.
var consumeScript = redis.NewScript(`
-- KEYS[1] = refresh token key
local v = redis.call('GET', KEYS[1])
if not v then
  return false
end
redis.call('DEL', KEYS[1])
return v
`)

func (s *RedisRefreshStore) key(token string) string {
	return s.keyPrefix + token
}

func (s *RedisRefreshStore) Save(ctx context.Context, token, username string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.key(token), username, ttl).Err()
}

func (s *RedisRefreshStore) Lookup(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrRefreshUnknown
		}
		return "", err
	}
	return v, nil
}

func (s *RedisRefreshStore) Consume(ctx context.Context, token string) (string, error) {
	v, err := consumeScript.Run(ctx, s.rdb, []string{s.key(token)}).Text()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrRefreshUnknown
		}
		return "", err
	}
	return v, nil
}

func (s *RedisRefreshStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, s.key(token)).Err()
}
