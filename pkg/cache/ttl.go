package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	v    V
	exp  time.Time
	cost int64
}

// TTLCache is an in-process map with lazy expiry. With a cost budget set it
// evicts expired entries first, then the ones closest to expiry, until the
// total cost fits. Run sweeps expired entries that are never read again.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	data    map[K]entry[V]
	ttl     time.Duration
	maxCost int64
	costOf  func(V) int64
	used    int64
	now     func() time.Time
}

// NewTTL returns a cache without a cost budget.
func NewTTL[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return NewBoundedTTL[K, V](ttl, 0, nil)
}

// NewBoundedTTL caps the summed cost of live entries at maxCost. A nil
// costOf counts every entry as 1. maxCost <= 0 means unbounded.
func NewBoundedTTL[K comparable, V any](ttl time.Duration, maxCost int64, costOf func(V) int64) *TTLCache[K, V] {
	if costOf == nil {
		costOf = func(V) int64 { return 1 }
	}
	return &TTLCache[K, V]{
		data:    make(map[K]entry[V]),
		ttl:     ttl,
		maxCost: maxCost,
		costOf:  costOf,
		now:     time.Now,
	}
}

func (c *TTLCache[K, V]) Get(k K) (V, bool) {
	c.mu.RLock()
	e, ok := c.data[k]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.exp) {
		c.mu.Lock()
		if cur, ok := c.data[k]; ok && c.now().After(cur.exp) {
			c.removeLocked(k, cur)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.v, true
}

func (c *TTLCache[K, V]) Set(k K, v V) {
	c.SetWithTTL(k, v, c.ttl)
}

func (c *TTLCache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	cost := c.costOf(v)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.data[k]; ok {
		c.removeLocked(k, old)
	}
	// never fits, keep what we have
	if c.maxCost > 0 && cost > c.maxCost {
		return
	}

	c.data[k] = entry[V]{v: v, exp: c.now().Add(ttl), cost: cost}
	c.used += cost

	if c.maxCost > 0 && c.used > c.maxCost {
		c.sweepLocked()
		for c.used > c.maxCost {
			c.evictOneLocked(k)
		}
	}
}

func (c *TTLCache[K, V]) Delete(k K) {
	c.mu.Lock()
	if e, ok := c.data[k]; ok {
		c.removeLocked(k, e)
	}
	c.mu.Unlock()
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Cost is the summed cost of the entries currently held.
func (c *TTLCache[K, V]) Cost() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.used
}

// Sweep drops expired entries and reports how many went.
func (c *TTLCache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked()
}

// Run sweeps every interval until ctx is done.
func (c *TTLCache[K, V]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

func (c *TTLCache[K, V]) sweepLocked() int {
	now := c.now()
	removed := 0
	for k, e := range c.data {
		if now.After(e.exp) {
			c.removeLocked(k, e)
			removed++
		}
	}
	return removed
}

// evictOneLocked drops the entry closest to expiry, sparing keep unless it
// is the only one left.
func (c *TTLCache[K, V]) evictOneLocked(keep K) {
	var (
		victim K
		ve     entry[V]
		found  bool
	)
	for k, e := range c.data {
		if k == keep {
			continue
		}
		if !found || e.exp.Before(ve.exp) {
			victim, ve, found = k, e, true
		}
	}
	if !found {
		victim, ve = keep, c.data[keep]
	}
	c.removeLocked(victim, ve)
}

func (c *TTLCache[K, V]) removeLocked(k K, e entry[V]) {
	delete(c.data, k)
	c.used -= e.cost
}

// Memory adapts a TTLCache to the Cache interface, costing entries by
// their size in bytes.
type Memory struct {
	c *TTLCache[string, []byte]
}

// NewMemory holds at most maxBytes of values; maxBytes <= 0 means no cap.
func NewMemory(ttl time.Duration, maxBytes int64) *Memory {
	return &Memory{c: NewBoundedTTL[string, []byte](ttl, maxBytes, func(v []byte) int64 {
		return int64(len(v))
	})}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.SetWithTTL(key, value, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Run sweeps expired entries every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	m.c.Run(ctx, interval)
}
