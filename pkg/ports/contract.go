package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCacheContract runs a suite of tests to verify that a Cache implementation
// adheres to the defined interface contract.
func RunCacheContract(t *testing.T, cache Cache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")
	approx := numeric.NewContext(0).ToApproximate(numeric.Int(3))

	build := func() *domain.Node {
		return domain.New(domain.TagMultiplication,
			domain.Int(-2),
			domain.Number(approx),
			domain.New(domain.TagDivision, domain.Symbol("x"), domain.Symbol("y")),
		)
	}

	t.Run("Put and Get", func(t *testing.T) {
		err := cache.Put(ctx, key, build())
		require.NoError(t, err, "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.True(t, domain.Equal(build(), got), "got %s", got)
		assert.False(t, got.Attached(), "cached trees come back detached")
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Isolation", func(t *testing.T) {
		stored := build()
		require.NoError(t, cache.Put(ctx, key+"-iso", stored))

		// Mutating the stored tree must not leak into the cache.
		stored.SetChild(0, domain.Symbol("z"))

		first, err := cache.Get(ctx, key+"-iso")
		require.NoError(t, err)
		assert.True(t, domain.Equal(build(), first))

		// Neither may mutating a returned tree.
		first.RemoveChildAt(0)
		second, err := cache.Get(ctx, key+"-iso")
		require.NoError(t, err)
		assert.True(t, domain.Equal(build(), second))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, domain.Undefined()))
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, domain.TagUndefined, got.Tag())
	})
}
