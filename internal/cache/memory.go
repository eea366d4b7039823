package cache

import (
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

type entry struct {
	data   []byte
	expiry time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiry.IsZero() && now.After(e.expiry)
}

// Stats counts lookups against a MemoryCache.
type Stats struct {
	Items     int    `json:"items"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// MemoryCache is an in-memory Cache. When built with a bound it evicts the
// least recently used entry to make room. Values are copied on the way in
// and out.
type MemoryCache struct {
	mu       sync.Mutex
	maxItems int
	lru      *simplelru.LRU[string, entry]
	stats    Stats
}

// NewMemoryCache returns an unbounded cache.
func NewMemoryCache() *MemoryCache {
	return NewBoundedMemoryCache(0)
}

// NewBoundedMemoryCache returns a cache holding at most maxItems entries.
// Zero or less means unbounded.
func NewBoundedMemoryCache(maxItems int) *MemoryCache {
	if maxItems <= 0 {
		maxItems = math.MaxInt
	}
	return &MemoryCache{
		maxItems: maxItems,
		lru:      newLRU(maxItems),
	}
}

func newLRU(size int) *simplelru.LRU[string, entry] {
	lru, err := simplelru.NewLRU[string, entry](size, nil)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return lru
}

func (c *MemoryCache) Add(key string, value []byte, duration time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	e := entry{data: data}
	if duration > 0 {
		e.expiry = time.Now().Add(duration)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if evicted := c.lru.Add(key, e); evicted {
		c.stats.Evictions++
	}
	return nil
}

func (c *MemoryCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.lru.Get(key)
	if !found {
		c.stats.Misses++
		return nil, ErrNotFound
	}
	if e.expired(time.Now()) {
		c.lru.Remove(key)
		c.stats.Misses++
		return nil, ErrNotFound
	}
	c.stats.Hits++

	data := make([]byte, len(e.data))
	copy(data, e.data)
	return data, nil
}

func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
	return nil
}

// Size returns the number of entries, including expired ones not yet
// looked up.
func (c *MemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Items = c.lru.Len()
	return s
}

// Clear removes every entry. Stats are kept.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru = newLRU(c.maxItems)
}
