package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/algebra/pkg/adapters/memory"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Contract(t *testing.T) {
	ports.RunCacheContract(t, memory.NewCache())
}

func TestMemoryCache_Eviction(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCache(memory.WithMaxEntries(2))

	require.NoError(t, c.Put(ctx, "a", domain.Symbol("a")))
	require.NoError(t, c.Put(ctx, "b", domain.Symbol("b")))
	require.NoError(t, c.Put(ctx, "a", domain.Symbol("a2")))
	require.NoError(t, c.Put(ctx, "c", domain.Symbol("c")))

	assert.Equal(t, 2, c.Len())

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	got, err := c.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", got.Name())
}
