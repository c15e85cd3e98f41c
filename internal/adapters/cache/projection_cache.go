package cache

import (
	"fmt"
	"storefx/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoProjectionCache memoizes display prices. Keys carry the rate signature,
// so entries of a replaced rate are never read again and age out under admission.
type RistrettoProjectionCache struct {
	cache *ristretto.Cache
}

func NewProjectionCache(maxItems int64) (*RistrettoProjectionCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("create projection cache failed: max items must be positive, got %d", maxItems)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create projection cache failed: %w", err)
	}
	return &RistrettoProjectionCache{cache: c}, nil
}

func (c *RistrettoProjectionCache) Get(key string) (domain.DisplayPrice, bool) {
	if v, ok := c.cache.Get(key); ok {
		price, ok := v.(domain.DisplayPrice)
		return price, ok
	}
	return domain.DisplayPrice{}, false
}

func (c *RistrettoProjectionCache) Set(key string, price domain.DisplayPrice) {
	c.cache.Set(key, price, 1)
}

func (c *RistrettoProjectionCache) Clear() { c.cache.Clear() }

func (c *RistrettoProjectionCache) Close() { c.cache.Close() }
