package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"promo_store_server/database"
	"promo_store_server/structs"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// CacheService wraps a Redis client with retry logic. It backs the session
// store and the rate limiter.
type CacheService struct {
	logger *gecho.Logger
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, client *redis.Client) *CacheService {
	return &CacheService{
		logger: logger,
		client: client,
	}
}

// NewRedisClient builds a pooled client from the cache configuration.
func NewRedisClient(cfg *structs.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Connection pool settings
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Retry settings
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
}

func (cs *CacheService) Close() error {
	return cs.client.Close()
}

// withRetry retries operation on network failures. Missing keys and other
// logical errors return immediately.
func (cs *CacheService) withRetry(ctx context.Context, operation func() error) error {
	err := database.RetryWithBackoff(ctx, cacheRetry, operation)
	if err != nil && isRetryableError(err) {
		cs.logger.Warn("Redis operation failed after retries", gecho.Field("error", err))
	}
	return err
}

var cacheRetry = database.RetryConfig{
	MaxAttempts:  4,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     time.Second,
	Multiplier:   2,
	Retryable:    isRetryableError,
}

func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "pool timeout")
}

func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	})
}

// Get returns "" without error when the key does not exist.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	var result string

	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	})

	return result, err
}

func (cs *CacheService) Delete(ctx context.Context, key string) error {
	return cs.withRetry(ctx, func() error {
		return cs.client.Del(ctx, key).Err()
	})
}

// IncrementRateLimit atomically increments the counter for a client and
// bucket. The window starts with the first hit.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, bucket string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, bucket)

	var result int64
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(ctx, key, window).Err()
		}
		return nil
	})

	return int(result), err
}

// RateLimitTTL returns how long until the counter for a client resets.
func (cs *CacheService) RateLimitTTL(ctx context.Context, ip, bucket string) (time.Duration, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, bucket)

	var ttl time.Duration
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.TTL(ctx, key).Result()
		if err != nil {
			return err
		}
		ttl = max(val, 0)
		return nil
	})

	return ttl, err
}

func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	})
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

func setJSON[T any](ctx context.Context, cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}

// getJSON returns (nil, nil) when the key does not exist.
func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}

	return &result, nil
}
