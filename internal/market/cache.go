package market

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Cache holds the last quoted price per symbol. It replaces hidden
// package-level state: the TTL and the clock are injected so the policy is
// testable in isolation.
type Cache struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	entries map[string]cacheEntry
}

type cacheEntry struct {
	price decimal.Decimal
	at    time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached price for symbol if it is still fresh.
func (c *Cache) Get(symbol string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[symbol]
	if !ok || c.now().Sub(e.at) > c.ttl {
		return decimal.Zero, false
	}

	return e.price, true
}

// GetStale returns the cached price regardless of age. Used as a best-effort
// fallback when every exchange lookup fails.
func (c *Cache) GetStale(symbol string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[symbol]
	if !ok {
		return decimal.Zero, false
	}

	return e.price, true
}

func (c *Cache) Set(symbol string, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[symbol] = cacheEntry{price: price, at: c.now()}
}
