package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-redis/redis/v8"
)

// keyPrefix namespaces session keys so the DB can be shared with other
// smarthub state.
const keyPrefix = "smarthub:sessions:"

// RedisStore keeps sessions in Redis so multiple API replicas resolve the
// same tokens. Expiry is delegated to the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to the given redis:// URL and verifies the
// connection with a short ping.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Ping reports whether the backend is reachable, for health checks.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Create(ctx context.Context) (string, *Session, error) {
	token, s := newSession(r.ttl, r.now())

	payload, err := json.Marshal(s)
	if err != nil {
		return "", nil, errors.Wrap(err, "marshal session")
	}
	if err := r.client.Set(ctx, keyPrefix+HashToken(token), payload, r.ttl).Err(); err != nil {
		return "", nil, errors.Wrap(err, "store session")
	}
	return token, s, nil
}

func (r *RedisStore) Lookup(ctx context.Context, token string) (*Session, error) {
	payload, err := r.client.Get(ctx, keyPrefix+HashToken(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, keyPrefix+HashToken(token)).Err(); err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}
