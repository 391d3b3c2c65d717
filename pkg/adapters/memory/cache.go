package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/ports"
)

// Cache implements ports.Cache in memory.
// Safe for concurrent use.
type Cache struct {
	data    map[string]*domain.Node
	order   []string
	maxSize int
	mu      sync.RWMutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries bounds the cache; the oldest entry is evicted first.
// Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		c.maxSize = n
	}
}

// NewCache creates a new in-memory cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		data: make(map[string]*domain.Node),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put stores a copy of n.
func (c *Cache) Put(ctx context.Context, key string, n *domain.Node) error {
	copied := n.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		c.order = append(c.order, key)
	}
	c.data[key] = copied

	for c.maxSize > 0 && len(c.order) > c.maxSize {
		oldest := c.order[0]
		c.order = slices.Delete(c.order, 0, 1)
		delete(c.data, oldest)
	}
	return nil
}

// Get returns a copy of the cached tree, so callers can't mutate the cache.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.data[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return n.Clone(), nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
