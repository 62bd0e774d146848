package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"logo-guess-service/internal/domain"
)

// BrandLoader fetches the full brand pool of a tier from a backing store.
// An empty tier means every brand.
type BrandLoader interface {
	LoadBrands(ctx context.Context, tier domain.Tier) ([]domain.Brand, error)
}

// BrandCache keeps tier pools in process with TTL and samples batches from them.
type BrandCache struct {
	loader BrandLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	cache map[string]cachedPool
	// gen is bumped by Invalidate; loads started under an older gen are not stored.
	gen uint64
}

type cachedPool struct {
	brands    []domain.Brand
	expiresAt time.Time
}

func NewBrandCache(loader BrandLoader, ttl time.Duration) *BrandCache {
	return &BrandCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		cache:  make(map[string]cachedPool),
	}
}

// ListBrands returns up to filter.Limit random brands from the cached pool.
func (c *BrandCache) ListBrands(ctx context.Context, filter domain.BrandFilter) ([]domain.Brand, error) {
	pool, err := c.pool(ctx, filter.Difficulty)
	if err != nil {
		return nil, err
	}
	return domain.SampleBrands(nil, pool, filter.Limit), nil
}

// Invalidate drops every cached pool. Loads already in flight are returned
// to their callers but never stored.
func (c *BrandCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.cache = make(map[string]cachedPool)
	c.gen++
	c.mu.Unlock()
	for _, key := range poolKeys() {
		c.sf.Forget(key)
	}
	return nil
}

func (c *BrandCache) pool(ctx context.Context, tier domain.Tier) ([]domain.Brand, error) {
	key := poolKey(tier)
	if brands, ok := c.lookup(key); ok {
		return brands, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if brands, ok := c.lookup(key); ok {
			return brands, nil
		}

		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		brands, err := c.loader.LoadBrands(ctx, tier)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.cache[key] = cachedPool{
				brands:    brands,
				expiresAt: c.clock().Add(c.ttlWithJitter()),
			}
		}
		c.mu.Unlock()
		return brands, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Brand), nil
}

func (c *BrandCache) lookup(key string) ([]domain.Brand, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false
	}
	return entry.brands, true
}

func (c *BrandCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}

func poolKeys() []string {
	keys := []string{poolKey("")}
	for _, tier := range domain.Tiers {
		keys = append(keys, poolKey(tier))
	}
	return keys
}

func poolKey(tier domain.Tier) string {
	if tier == "" {
		return "all"
	}
	return string(tier)
}
