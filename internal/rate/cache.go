package rate

import (
	"storefx/internal/domain"
	"sync/atomic"
)

type snapshot struct {
	rate      domain.ExchangeRate
	signature string
}

// Cache holds the last known active exchange rate for the whole process.
// Readers never block; the Synchronizer owning the cache is its only writer and always
// swaps in a complete snapshot, so a reader sees either the old or the new rate.
type Cache struct {
	current atomic.Pointer[snapshot]
}

func NewCache() *Cache {
	return &Cache{}
}

// Read returns the cached rate, or false when no rate is known.
func (c *Cache) Read() (domain.ExchangeRate, bool) {
	s := c.current.Load()
	if s == nil {
		return domain.ExchangeRate{}, false
	}
	return s.rate, true
}

// Current is Read shaped for Projector.Project: nil when no rate is known.
func (c *Cache) Current() *domain.ExchangeRate {
	s := c.current.Load()
	if s == nil {
		return nil
	}
	r := s.rate
	return &r
}

func (c *Cache) Signature() string {
	s := c.current.Load()
	if s == nil {
		return ""
	}
	return s.signature
}

func (c *Cache) store(r domain.ExchangeRate) {
	c.current.Store(&snapshot{rate: r, signature: r.Signature()})
}

func (c *Cache) clear() {
	c.current.Store(nil)
}
