package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// QueryService serves reads through the cache. TTLs double as poll intervals: a key
// is reloaded from the backend at most once per TTL window.
type QueryService struct {
	cache Cache
	log   logrus.FieldLogger
}

func NewQueryService(cache Cache, log logrus.FieldLogger) *QueryService {
	return &QueryService{cache: cache, log: log.WithField("component", "query")}
}

// Fetch fills dest from the cache or, on a miss, from loader. Cache failures are logged
// and the loader result is still returned.
func (s *QueryService) Fetch(ctx context.Context, key string, ttl time.Duration, dest any, loader func(ctx context.Context) (any, error)) error {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache read failed")
	}
	if hit {
		return nil
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return json.Unmarshal(payload, dest)
}

// Invalidate drops every key under the given prefixes.
func (s *QueryService) Invalidate(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		n, err := s.cache.InvalidatePrefix(ctx, prefix)
		if err != nil {
			s.log.WithError(err).WithField("prefix", prefix).Warn("cache invalidation failed")
			continue
		}
		s.log.WithFields(logrus.Fields{"prefix": prefix, "keys": n}).Debug("cache invalidated")
	}
}

var _ QueryServiceInterface = (*QueryService)(nil)
