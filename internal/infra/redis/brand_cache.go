package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"logo-guess-service/internal/domain"
)

const genKey = "catalog:brands:gen"

// BrandLoader fetches the full brand pool of a tier (every brand for an empty tier).
type BrandLoader interface {
	LoadBrands(ctx context.Context, tier domain.Tier) ([]domain.Brand, error)
}

// BrandCache keeps tier pools in Redis and falls back to a loader on cache miss.
// Pools are stored as JSON under catalog:brands:{tier}, or catalog:brands:all.
type BrandCache struct {
	client *redis.Client
	loader BrandLoader
	ttl    time.Duration
	sf     singleflight.Group
}

func NewBrandCache(client *redis.Client, loader BrandLoader, ttl time.Duration) *BrandCache {
	return &BrandCache{
		client: client,
		loader: loader,
		ttl:    ttl,
	}
}

// ListBrands samples up to filter.Limit brands from the cached pool.
func (c *BrandCache) ListBrands(ctx context.Context, filter domain.BrandFilter) ([]domain.Brand, error) {
	pool, err := c.pool(ctx, filter.Difficulty)
	if err != nil {
		return nil, err
	}
	return domain.SampleBrands(nil, pool, filter.Limit), nil
}

// Invalidate bumps catalog:brands:gen and drops every cached pool. A load
// that started before the bump deletes its own write afterwards.
func (c *BrandCache) Invalidate(ctx context.Context) error {
	keys := c.keys()
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate brand cache: %w", err)
	}
	for _, key := range keys {
		c.sf.Forget(key)
	}
	return nil
}

func (c *BrandCache) pool(ctx context.Context, tier domain.Tier) ([]domain.Brand, error) {
	key := c.key(tier)
	if brands, ok := c.cached(ctx, key); ok {
		return brands, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if brands, ok := c.cached(ctx, key); ok {
			return brands, nil
		}

		gen, genErr := c.generation(ctx)

		brands, err := c.loader.LoadBrands(ctx, tier)
		if err != nil {
			return nil, err
		}
		if genErr != nil {
			return brands, nil
		}
		if raw, err := json.Marshal(brands); err == nil {
			// best effort; a failed write only costs another load
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
			if now, err := c.generation(ctx); err != nil || now != gen {
				// invalidated while loading; the pool may predate the change
				_ = c.client.Del(ctx, key).Err()
			}
		}
		return brands, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Brand), nil
}

func (c *BrandCache) cached(ctx context.Context, key string) ([]domain.Brand, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var brands []domain.Brand
	if err := json.Unmarshal(raw, &brands); err != nil {
		return nil, false
	}
	return brands, true
}

func (c *BrandCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *BrandCache) keys() []string {
	keys := make([]string, 0, len(domain.Tiers)+1)
	keys = append(keys, c.key(""))
	for _, tier := range domain.Tiers {
		keys = append(keys, c.key(tier))
	}
	return keys
}

func (c *BrandCache) key(tier domain.Tier) string {
	if tier == "" {
		return "catalog:brands:all"
	}
	return "catalog:brands:" + string(tier)
}

func (c *BrandCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
