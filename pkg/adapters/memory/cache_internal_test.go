package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_EvictionKeepsOrderCompact(t *testing.T) {
	ctx := context.Background()
	c := NewCache(WithMaxEntries(4))

	for i := range 1000 {
		require.NoError(t, c.Put(ctx, fmt.Sprintf("k%d", i), domain.Int(int64(i))))
	}

	assert.Len(t, c.order, 4)
	assert.LessOrEqual(t, cap(c.order), 16)
	assert.Equal(t, []string{"k996", "k997", "k998", "k999"}, c.order)
	for _, stale := range c.order[len(c.order):cap(c.order)] {
		assert.Empty(t, stale)
	}
	assert.Equal(t, 4, c.Len())
}
