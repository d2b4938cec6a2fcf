package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"podcast-guest-tracker/internal/common/config"
	apperrors "podcast-guest-tracker/internal/common/errors"
	"podcast-guest-tracker/internal/models"
)

const redisKeyPrefix = "guestfit:"

// RedisStore shares the result cache across processes. Expiry is delegated to
// Redis key TTLs, which matches the lazy-purge contract.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &RedisStore{client: rdb, ttl: ttl}
}

// NewRedisStoreWithClient wraps an existing client (used in tests).
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, req models.AnalysisRequest) (*models.Recommendation, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+req.CacheKey()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewCacheUnavailableError(err)
	}

	var rec models.Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// A payload we can't decode is as good as a miss; overwrite it later.
		return nil, nil
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, req models.AnalysisRequest, rec models.Recommendation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+req.CacheKey(), payload, s.ttl).Err(); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}
