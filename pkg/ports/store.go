package ports

import (
	"context"
	"errors"

	"github.com/aretw0/algebra/pkg/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is unknown or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache memoizes reductions keyed by a digest of the input tree and the
// session settings. Implementations must return trees the caller may mutate.
type Cache interface {
	// Get returns the cached result for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) (*domain.Node, error)

	// Put stores a result. The cache must not retain n itself.
	Put(ctx context.Context, key string, n *domain.Node) error
}
