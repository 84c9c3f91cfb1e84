package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restodash/dashboard-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

// Get decodes the cached JSON for key into dest and reports whether it was present.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value as JSON. A zero ttl falls back to the cache default.
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.TTL
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, ttl).Err()
}

// InvalidatePrefix deletes every key starting with prefix.
func (c *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	var cursor uint64
	deleted := 0
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.Client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) key(id string) string {
	return "session:" + id
}

// Save writes the session with a TTL derived from its ExpiresAt.
func (s *RedisSessionStore) Save(ctx context.Context, sess *domain.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(sess.ID), payload, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.Client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

const sessionUpdateRetries = 5

// Update applies mutate to the stored session under WATCH and retries when another
// request rewrote it first. Only the fields mutate touches change.
func (s *RedisSessionStore) Update(ctx context.Context, id string, mutate func(*domain.Session)) (*domain.Session, error) {
	key := s.key(id)
	var updated domain.Session
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		var sess domain.Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		mutate(&sess)

		ttl := time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return ErrSessionNotFound
		}
		payload, err := json.Marshal(&sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		if err == nil {
			updated = sess
		}
		return err
	}

	for i := 0; i < sessionUpdateRetries; i++ {
		err := s.Client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, fmt.Errorf("update session %s: %w", id, redis.TxFailedErr)
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, s.key(id)).Err()
}
