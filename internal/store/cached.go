package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"petskub/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedStore puts a Redis read-through cache in front of another store.
// Only hits are cached; misses and errors always reach the backing store.
type CachedStore struct {
	next   ArticleStore
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedStore connects to redisAddr and wraps next.
func NewCachedStore(next ArticleStore, redisAddr string, ttl time.Duration, logger *zap.Logger) (*CachedStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &CachedStore{next: next, rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Close cleans up the redis connection
func (s *CachedStore) Close() {
	if s.rdb != nil {
		s.rdb.Close()
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("share:article:%s", id)
}

// GetPublished serves from Redis when possible. Cache failures are logged
// and never fail the lookup. An article unpublished upstream keeps being
// served until its entry expires, so the TTL is the staleness bound.
func (s *CachedStore) GetPublished(ctx context.Context, id string) (*model.ArticleSummary, error) {
	val, err := s.rdb.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var article model.ArticleSummary
		if err := json.Unmarshal(val, &article); err == nil && article.Published {
			return &article, nil
		}
		s.logger.Warn("Discarding invalid cache entry", zap.String("id", id))
		s.rdb.Del(ctx, cacheKey(id))
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("Cache read failed", zap.String("id", id), zap.Error(err))
	}

	article, err := s.next.GetPublished(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil || !article.Published {
		return article, nil
	}

	data, err := json.Marshal(article)
	if err != nil {
		return article, nil
	}
	if err := s.rdb.Set(ctx, cacheKey(id), data, s.ttl).Err(); err != nil {
		s.logger.Warn("Cache write failed", zap.String("id", id), zap.Error(err))
	}
	return article, nil
}
