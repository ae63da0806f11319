package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "storefront/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyProduct     = "catalog:product:"
	keyProductList = "catalog:list:"
)

// CatalogCache caches public product lookups and listings in Redis.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCatalogCache returns a new CatalogCache.
func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

// GetProduct returns the cached product, or nil on a miss.
func (c *CatalogCache) GetProduct(ctx context.Context, id int64) (*dom.Product, error) {
	var p dom.Product
	ok, err := getJSON(ctx, c.rdb, fmt.Sprintf("%s%d", keyProduct, id), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (c *CatalogCache) SetProduct(ctx context.Context, p dom.Product) error {
	return setJSON(ctx, c.rdb, fmt.Sprintf("%s%d", keyProduct, p.ID), p, c.ttl)
}

// GetList returns the cached listing for f, or nil on a miss.
func (c *CatalogCache) GetList(ctx context.Context, f dom.ProductFilter) ([]dom.Product, error) {
	var list []dom.Product
	ok, err := getJSON(ctx, c.rdb, ListKey(f), &list)
	if err != nil || !ok {
		return nil, err
	}
	if list == nil {
		list = []dom.Product{}
	}
	return list, nil
}

func (c *CatalogCache) SetList(ctx context.Context, f dom.ProductFilter, list []dom.Product) error {
	return setJSON(ctx, c.rdb, ListKey(f), list, c.ttl)
}

// InvalidateAll drops every cached product and listing (cache invalidation on write).
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	return deletePattern(ctx, c.rdb, "catalog:*")
}

// ListKey identifies a public listing. Inactive listings are never cached.
func ListKey(f dom.ProductFilter) string {
	f = f.Normalize()
	return fmt.Sprintf("%s%s:%d:%d:%s", keyProductList, f.Kind, f.Limit, f.Offset, normalizeQuery(f.Query))
}

func getJSON(ctx context.Context, rdb *redis.Client, key string, dst any) (bool, error) {
	b, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func setJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

func deletePattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
