package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the session as JSON under a single key. Sessions with
// an expiry get a matching TTL so Redis drops them on its own.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed session store. Key may be empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "panel:session"
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Save(s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if s.ExpiresAt > 0 {
		ttl = time.Until(time.Unix(s.ExpiresAt, 0))
		if ttl <= 0 {
			// don't store already-expired sessions longer than a beat
			ttl = time.Second
		}
	}
	return r.client.Set(context.Background(), r.key, b, ttl).Err()
}

func (r *RedisStore) Load() (Session, error) {
	b, err := r.client.Get(context.Background(), r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Session{}, nil
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, nil
	}
	return s, nil
}
