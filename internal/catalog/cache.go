// internal/catalog/cache.go
// Redis read-through cache in front of the catalog store

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/rikacare/rika-backend/internal/common/logger"
)

const (
	cacheKeyList    = "catalog:list:%d"
	cacheKeyProduct = "catalog:product:%d"
	cacheKeyVersion = "catalog:version"
)

// CachedRepository serves reads from Redis and falls back to next on a miss.
// Cache failures are logged and never fail the request.
type CachedRepository struct {
	next Repository
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

func NewCachedRepository(next Repository, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedRepository {
	return &CachedRepository{next: next, rdb: rdb, ttl: ttl, log: log.With("component", "catalog_cache")}
}

func (c *CachedRepository) GetAllProducts(ctx context.Context, limit int) ([]*Product, error) {
	key, err := c.versionedKey(ctx, fmt.Sprintf(cacheKeyList, limit))
	if err == nil {
		var cached []*Product
		if c.get(ctx, key, &cached) {
			cacheHits.WithLabelValues("list").Inc()
			return cached, nil
		}
	}
	cacheMisses.WithLabelValues("list").Inc()

	products, err := c.next.GetAllProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	if key != "" {
		c.set(ctx, key, products)
	}
	return products, nil
}

func (c *CachedRepository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	key := fmt.Sprintf(cacheKeyProduct, id)
	var cached Product
	if c.get(ctx, key, &cached) {
		cacheHits.WithLabelValues("product").Inc()
		return &cached, nil
	}
	cacheMisses.WithLabelValues("product").Inc()

	p, err := c.next.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, p)
	return p, nil
}

// CreateProduct writes through and bumps the list version so cached lists expire
func (c *CachedRepository) CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	p, err := c.next.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Incr(ctx, cacheKeyVersion).Err(); err != nil {
		c.log.Warn("failed to bump catalog cache version", "error", err)
	}
	return p, nil
}

func (c *CachedRepository) CountProducts(ctx context.Context) (int, error) {
	return c.next.CountProducts(ctx)
}

func (c *CachedRepository) versionedKey(ctx context.Context, base string) (string, error) {
	v, err := c.rdb.Get(ctx, cacheKeyVersion).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn("catalog cache unavailable", "error", err)
		return "", err
	}
	return fmt.Sprintf("%s:v%d", base, v), nil
}

func (c *CachedRepository) get(ctx context.Context, key string, dst interface{}) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("catalog cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedRepository) set(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", "key", key, "error", err)
	}
}
