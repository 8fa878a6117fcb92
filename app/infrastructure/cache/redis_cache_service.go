package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"vowboard.io/planner-gateway/app/utils/logger"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// RedisCacheService provides caching functionality using Redis. Expiry is
// delegated to Redis, so expired keys are never returned.
type RedisCacheService struct {
	client  *redis.Client
	redsync *redsync.Redsync
}

func newRedisOptions() *redis.Options {
	redisURL := environment_variables.EnvironmentVariables.CACHE_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to parse Redis URL: %v", err))
		opts = &redis.Options{
			Addr: "localhost:6379",
		}
	}

	if environment_variables.EnvironmentVariables.CACHE_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.CACHE_PASSWORD
	}
	if environment_variables.EnvironmentVariables.CACHE_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.CACHE_DB); err == nil {
			opts.DB = db
		}
	}
	return opts
}

// NewRedisCacheService connects to Redis, falling back to a no-op cache when
// the server is unreachable.
func NewRedisCacheService() CacheService {
	client := redis.NewClient(newRedisOptions())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to connect to Redis, caching disabled: %v", err))
		_ = client.Close()
		return &NoOpCacheService{}
	}
	logger.GetLogger().Info("Successfully connected to Redis")
	return NewRedisCacheServiceWithClient(client)
}

func NewRedisCacheServiceWithClient(client *redis.Client) *RedisCacheService {
	return &RedisCacheService{
		client:  client,
		redsync: redsync.New(goredis.NewPool(client)),
	}
}

func (r *RedisCacheService) Get(ctx context.Context, key string, dest any) bool {
	val, err := r.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.GetLogger().Warnf("redis cache: failed to get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		logger.GetLogger().Warnf("redis cache: failed to decode %s: %v", key, err)
		return false
	}
	return true
}

func (r *RedisCacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().Warnf("redis cache: failed to marshal %s: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, KeyPrefix+key, jsonValue, ttl).Err(); err != nil {
		logger.GetLogger().Warnf("redis cache: failed to set %s: %v", key, err)
	}
}

func (r *RedisCacheService) GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), ttl time.Duration) error {
	if r.Get(ctx, key, dest) {
		return nil
	}

	value, err := fallback()
	if err != nil {
		return fmt.Errorf("fallback function failed: %w", err)
	}

	r.Set(ctx, key, value, ttl)
	return copyInto(value, dest)
}

// Invalidate removes keys from Redis asynchronously (UNLINK)
func (r *RedisCacheService) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = KeyPrefix + key
	}
	if err := r.client.Unlink(ctx, prefixed...).Err(); err != nil {
		logger.GetLogger().Warnf("redis cache: failed to unlink %v: %v", keys, err)
	}
}

func (r *RedisCacheService) InvalidatePrefix(ctx context.Context, prefix string) {
	pattern := KeyPrefix + prefix + "*"
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			logger.GetLogger().Warnf("redis cache: failed to scan %s: %v", pattern, err)
			return
		}
		if len(keys) > 0 {
			pipe := r.client.Pipeline()
			for _, k := range keys {
				pipe.Unlink(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				logger.GetLogger().Warnf("redis cache: failed to unlink keys: %v", err)
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

// PurgeExpired is a no-op: Redis expires keys itself
func (r *RedisCacheService) PurgeExpired(ctx context.Context) int {
	return 0
}

// NewMutex returns a distributed lock shared by every replica using this Redis
func (r *RedisCacheService) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return r.redsync.NewMutex(KeyPrefix+name, options...)
}

func (r *RedisCacheService) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}
