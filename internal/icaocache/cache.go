// Package icaocache implements the TTL-expiring, LRU-bounded ICAO address
// confirmation cache (spec.md §5 and §9): addresses
// confirmed via a CRC-clean DF11/17/18 frame, consulted by the frame
// parser when recovering a short frame's address via AP⊕CRC, and gating
// that recovery so CRC residuals can't seed phantom aircraft. The set does
// not only grow: an address drops out once the TTL passes without a fresh
// confirmation, or when it is the least recently confirmed entry and the
// cache is over capacity.
//
// Grounded on Regentag-go1090's mode_s.Decoder, which keeps exactly this
// kind of recently-seen-address cache via github.com/patrickmn/go-cache
// (see mode_s/decoder.go's MODES_ICAO_CACHE_TTL). We reuse the same
// library for the same reason: it's a TTL-expiring set, which is what this
// is, plus a hard cap on resident entries so a burst of distinct addresses
// can't grow it unbounded between cleanup sweeps.
package icaocache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"go1090/internal/adsb"
)

// DefaultCapacity bounds resident entries (spec.md §5: "cap: 16,384 entries").
const DefaultCapacity = 16384

// DefaultTTL is how long a confirmed address remains trusted without being
// re-confirmed by a fresh DF11/17/18 frame.
const DefaultTTL = 60 * time.Second

// Cache is a bounded, TTL-expiring set of confirmed ICAO addresses.
type Cache struct {
	store    *gocache.Cache
	capacity int

	mu    sync.Mutex
	order []adsb.IcaoAddress // least recently confirmed first, for capacity eviction
}

// New creates a Cache with the given TTL and capacity. A zero ttl or
// capacity falls back to the package defaults.
func New(ttl time.Duration, capacity int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		store:    gocache.New(ttl, ttl/2),
		capacity: capacity,
	}
}

// Confirm records that icao was seen in a CRC-clean DF11/17/18 frame.
func (c *Cache) Confirm(icao adsb.IcaoAddress) {
	key := icao.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Move icao to the most recently confirmed end of the eviction order.
	for i, a := range c.order {
		if a == icao {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, icao)
	c.evictOverCapacityLocked()
	c.store.SetDefault(key, struct{}{})
}

// Contains reports whether icao has been confirmed within the TTL window.
func (c *Cache) Contains(icao adsb.IcaoAddress) bool {
	_, found := c.store.Get(icao.String())
	return found
}

// Len returns the number of entries currently tracked for eviction
// ordering. It is not exact once TTL expirations have pruned the
// underlying store without a matching Confirm call, but it never exceeds
// capacity by more than the bookkeeping for one recent insert.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// evictOverCapacityLocked drops the oldest tracked addresses once the
// insertion-order slice exceeds capacity. Must be called with c.mu held.
func (c *Cache) evictOverCapacityLocked() {
	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.store.Delete(oldest.String())
	}
}
