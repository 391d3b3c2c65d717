package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/algebra/pkg/codec"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the keys written by the cache.
const DefaultPrefix = "algebra:reduce:"

// Cache implements ports.Cache on Redis. Trees are stored as JSON documents.
type Cache struct {
	client  backend.UniversalClient
	prefix  string
	ttl     time.Duration
	numeric numeric.Context
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL expires entries after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithNumeric sets the precision used to decode Approximate numbers.
func WithNumeric(ctx numeric.Context) Option {
	return func(c *Cache) {
		c.numeric = ctx
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Cache {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Cache {
	c := &Cache{
		client:  client,
		prefix:  DefaultPrefix,
		numeric: numeric.NewContext(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Put stores n under key.
func (c *Cache) Put(ctx context.Context, key string, n *domain.Node) error {
	data, err := json.Marshal(codec.Encode(n))
	if err != nil {
		return fmt.Errorf("failed to encode expression: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis error storing %s: %w", key, err)
	}
	return nil
}

// Get loads the tree stored under key.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Node, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading %s: %w", key, err)
	}

	n, err := codec.Parse(data, codec.FormatJSON, c.numeric)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return n, nil
}
