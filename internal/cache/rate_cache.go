package cache

import (
	"context"
	"time"

	dom "storefront/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyRates = "rates:all"

// RateCache caches the full exchange rate table.
type RateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRateCache(rdb *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached rates, or nil on a miss.
func (c *RateCache) Get(ctx context.Context) ([]dom.ExchangeRate, error) {
	var list []dom.ExchangeRate
	ok, err := getJSON(ctx, c.rdb, keyRates, &list)
	if err != nil || !ok {
		return nil, err
	}
	if list == nil {
		list = []dom.ExchangeRate{}
	}
	return list, nil
}

func (c *RateCache) Set(ctx context.Context, list []dom.ExchangeRate) error {
	return setJSON(ctx, c.rdb, keyRates, list, c.ttl)
}

func (c *RateCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyRates).Err()
}
