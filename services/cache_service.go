package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"dewode_server/cart"
	"dewode_server/config"
	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService wraps a shared Redis client. All methods are safe for
// concurrent use. A nil *CacheService is tolerated by callers that treat
// the cache as optional (see ProductService).
type CacheService struct {
	client *redis.Client
	logger *gecho.Logger
	cfg    *structs.Config
}

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

const (
	productListCacheKey = "products:list"
	productCacheKey     = "products:id"

	verifiedKeyPrefix = "verified:"
	cartKeyPrefix     = "cart:"

	defaultCacheTimeout = 3 * time.Second
	maxCacheRetries     = 2
)

func getRedisClient(cfg *structs.Config) *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:            cfg.Cache.Address,
			Username:        cfg.Cache.Username,
			Password:        cfg.Cache.Password,
			DB:              cfg.Cache.DB,
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			DialTimeout:     cfg.Cache.DialTimeout,
			ReadTimeout:     cfg.Cache.ReadTimeout,
			WriteTimeout:    cfg.Cache.WriteTimeout,
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

func NewCacheService(logger *gecho.Logger) *CacheService {
	cfg := config.GetConfig()
	return &CacheService{
		client: getRedisClient(cfg),
		logger: logger,
		cfg:    cfg,
	}
}

// withRetry runs operation up to maxRetries+1 times with exponential
// backoff and random jitter. Cache misses (redis.Nil) are never retried.
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := operation(); err != nil {
			lastErr = err
			if !cs.isRetryableError(err) {
				return err
			}
			if attempt < maxRetries {
				backoff := time.Duration(1<<uint(attempt)) * 50 * time.Millisecond
				jitter, randErr := rand.Int(rand.Reader, big.NewInt(int64(backoff/2)))
				if randErr == nil {
					backoff += time.Duration(jitter.Int64())
				}
				time.Sleep(backoff)
			}
			continue
		}
		return nil
	}

	return fmt.Errorf("cache operation failed after %d attempts: %w", maxRetries+1, lastErr)
}

func (cs *CacheService) isRetryableError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	msg := strings.ToLower(err.Error())
	retryable := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"no route to host",
		"network is unreachable",
		"loading", // redis replying LOADING during startup
		"readonly",
	}
	for _, fragment := range retryable {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func (cs *CacheService) setJSON(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for key %s: %w", key, err)
	}

	return cs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
		defer cancel()
		return cs.client.Set(ctx, key, data, ttl).Err()
	}, maxCacheRetries)
}

func getJSON[T any](cs *CacheService, key string) (*T, error) {
	var raw string

	err := cs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
		defer cancel()
		result, err := cs.client.Get(ctx, key).Result()
		if err != nil {
			return err
		}
		raw = result
		return nil
	}, maxCacheRetries)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache value for key %s: %w", key, err)
	}
	return &value, nil
}

// Set stores a raw value under key with the given TTL.
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
		defer cancel()
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, maxCacheRetries)
}

// Get returns the raw string value for key, or redis.Nil on a miss.
func (cs *CacheService) Get(key string) (string, error) {
	var value string
	err := cs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
		defer cancel()
		result, err := cs.client.Get(ctx, key).Result()
		if err != nil {
			return err
		}
		value = result
		return nil
	}, maxCacheRetries)
	return value, err
}

func (cs *CacheService) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return cs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
		defer cancel()
		return cs.client.Del(ctx, keys...).Err()
	}, maxCacheRetries)
}

func (cs *CacheService) Exists(key string) (bool, error) {
	var count int64
	err := cs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
		defer cancel()
		result, err := cs.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		count = result
		return nil
	}, maxCacheRetries)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeletePattern removes every key matching pattern using SCAN, so large
// keyspaces are not blocked the way KEYS would.
func (cs *CacheService) DeletePattern(pattern string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys for pattern %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := cs.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys for pattern %s: %w", pattern, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Product caching.

func productListKey(includeSoldOut bool) string {
	if includeSoldOut {
		return productListCacheKey + ":all"
	}
	return productListCacheKey + ":available"
}

// A cache miss is reported as (nil, nil), not as an error.
func (cs *CacheService) GetProductList(includeSoldOut bool) ([]tables.Product, error) {
	products, err := getJSON[[]tables.Product](cs, productListKey(includeSoldOut))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return *products, nil
}

func (cs *CacheService) SetProductList(includeSoldOut bool, products []tables.Product) error {
	return cs.setJSON(productListKey(includeSoldOut), products, cs.cfg.Cache.ProductListTTL)
}

// A cache miss is reported as (nil, nil), not as an error.
func (cs *CacheService) GetProductByID(id uuid.UUID) (*tables.Product, error) {
	product, err := getJSON[tables.Product](cs, fmt.Sprintf("%s:%s", productCacheKey, id))
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return product, err
}

func (cs *CacheService) SetProductByID(product *tables.Product) error {
	key := fmt.Sprintf("%s:%s", productCacheKey, product.ID)
	return cs.setJSON(key, product, cs.cfg.Cache.ProductListTTL)
}

// InvalidateProductCaches drops both list variants and the single
// product entry after any catalog mutation.
func (cs *CacheService) InvalidateProductCaches(id uuid.UUID) error {
	return cs.Delete(
		productListKey(true),
		productListKey(false),
		fmt.Sprintf("%s:%s", productCacheKey, id),
	)
}

// Verified email markers. Markers have no expiry: once a customer has
// proven an address it stays usable for checkout until cleared.

func (cs *CacheService) MarkEmailVerified(email string) error {
	return cs.Set(verifiedKeyPrefix+strings.ToLower(email), "1", 0)
}

func (cs *CacheService) IsEmailVerified(email string) (bool, error) {
	return cs.Exists(verifiedKeyPrefix + strings.ToLower(email))
}

func (cs *CacheService) ClearEmailVerified(email string) error {
	return cs.Delete(verifiedKeyPrefix + strings.ToLower(email))
}

// Cart sessions. Carts live under their session id with a sliding TTL
// refreshed on every write.

func (cs *CacheService) GetCart(sessionID string) (*cart.Cart, error) {
	raw, err := cs.Get(cartKeyPrefix + sessionID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.New(), nil
		}
		return nil, err
	}

	c, err := cart.Load([]byte(raw))
	if err != nil {
		cs.logger.Warn("Discarding corrupt cart payload",
			gecho.Field("session_id", sessionID),
			gecho.Field("error", err.Error()),
		)
	}
	return c, nil
}

func (cs *CacheService) SetCart(sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for session %s: %w", sessionID, err)
	}
	return cs.Set(cartKeyPrefix+sessionID, data, cs.cfg.Cache.CartTTL)
}

func (cs *CacheService) DeleteCart(sessionID string) error {
	return cs.Delete(cartKeyPrefix + sessionID)
}

// Rate limiting.

func (cs *CacheService) IncrementRateLimit(key string, window time.Duration) (int64, error) {
	var count int64
	err := cs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
		defer cancel()

		result, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		count = result

		// First hit in the window owns the expiry.
		if count == 1 {
			if err := cs.client.Expire(ctx, key, window).Err(); err != nil {
				return err
			}
		}
		return nil
	}, maxCacheRetries)
	return count, err
}

func (cs *CacheService) GetRateLimitStatus(key string) (int64, time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
	defer cancel()

	count, err := cs.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	ttl, err := cs.client.TTL(ctx, key).Result()
	if err != nil {
		return count, 0, err
	}
	return count, ttl, nil
}

// ClearAll flushes the whole database. Development tooling only.
func (cs *CacheService) ClearAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return cs.client.FlushDB(ctx).Err()
}

// Ping verifies connectivity for health checks.
func (cs *CacheService) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultCacheTimeout)
	defer cancel()
	return cs.client.Ping(ctx).Err()
}

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
