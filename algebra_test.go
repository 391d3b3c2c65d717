package algebra_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/algebra"
	"github.com/aretw0/algebra/internal/logging"
	"github.com/aretw0/algebra/pkg/adapters/memory"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/dsl"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Reduce(t *testing.T) {
	eng := algebra.New()
	out, err := eng.Reduce(context.Background(), dsl.Div(dsl.Mul(6, "x"), dsl.Mul(3, "y")))
	require.NoError(t, err)
	assert.Equal(t, "Multiplication(2, Division(x, y))", out.String())
	assert.False(t, out.Attached())
}

func TestEngine_RejectsInvalidInput(t *testing.T) {
	eng := algebra.New()
	ctx := context.Background()

	_, err := eng.Reduce(ctx, domain.New(domain.TagDivision, domain.Symbol("x")))
	assert.ErrorIs(t, err, domain.ErrMalformed)

	_, err = eng.Reduce(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrMalformed)

	inner := domain.Symbol("x")
	domain.New(domain.TagNegative, inner)
	_, err = eng.Reduce(ctx, inner)
	assert.ErrorIs(t, err, algebra.ErrAttached)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = eng.Reduce(cancelled, dsl.Sym("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_RecoversPanics(t *testing.T) {
	reg := registry.NewRegistry()
	reg.AddReducer(domain.TagSymbol, registry.RuleFunc(func(_ context.Context, n *domain.Node, _ ports.Session) registry.Outcome {
		n.Child(3)
		return registry.NotApplicable
	}), "test.broken")

	var buf bytes.Buffer
	eng := algebra.New(algebra.WithRegistry(reg), algebra.WithLogger(logging.NewWriter(&buf, 0)))

	_, err := eng.Reduce(context.Background(), dsl.Sym("x"))
	assert.ErrorIs(t, err, algebra.ErrReductionFailed)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.Contains(t, buf.String(), "reduction panicked")
}

func TestEngine_DepthLimit(t *testing.T) {
	reg := registry.NewRegistry()
	reg.AddReducer(domain.TagSymbol, registry.RuleFunc(func(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
		s.Reduce(ctx, n)
		return registry.Applied
	}), "test.loop")

	eng := algebra.New(algebra.WithRegistry(reg), algebra.WithMaxDepth(20))
	_, err := eng.Reduce(context.Background(), dsl.Sym("x"))
	assert.ErrorIs(t, err, algebra.ErrReductionFailed)
}

func TestEngine_Modes(t *testing.T) {
	ctx := context.Background()

	out, err := algebra.New(algebra.WithMode(algebra.ModeSymbolic)).Reduce(ctx, dsl.Mul(dsl.Neg("x"), "y"))
	require.NoError(t, err)
	assert.Equal(t, "Multiplication(Negative(x), y)", out.String())

	out, err = algebra.New().Reduce(ctx, dsl.Mul(dsl.Neg("x"), "y"))
	require.NoError(t, err)
	assert.Equal(t, "Multiplication(-1, x, y)", out.String())
}

func TestEngine_Precision(t *testing.T) {
	coefficient := func(eng *algebra.Engine) string {
		out, err := eng.Reduce(context.Background(), dsl.Div("x", 3.0))
		require.NoError(t, err)
		v, ok := out.Child(0).Value()
		require.True(t, ok, "got %s", out)
		assert.True(t, v.IsApproximate())
		return v.Text()
	}

	short := coefficient(algebra.New(algebra.WithPrecision(5)))
	long := coefficient(algebra.New())
	assert.Less(t, len(short), len(long))
	assert.True(t, strings.HasPrefix(long, "0.3333"), long)
}

func TestEngine_Cache(t *testing.T) {
	cache := memory.NewCache()
	var events []*domain.ReduceEvent
	eng := algebra.New(
		algebra.WithCache(cache),
		algebra.WithLifecycleHooks(domain.LifecycleHooks{
			OnReduce: func(_ context.Context, e *domain.ReduceEvent) { events = append(events, e) },
		}),
	)
	ctx := context.Background()

	first, err := eng.Reduce(ctx, dsl.Neg(dsl.Neg("x")))
	require.NoError(t, err)
	second, err := eng.Reduce(ctx, dsl.Neg(dsl.Neg("x")))
	require.NoError(t, err)

	assert.True(t, domain.Equal(first, second))
	assert.Equal(t, 1, cache.Len())
	require.Len(t, events, 2)
	assert.False(t, events[0].CacheHit)
	assert.Equal(t, 1, events[0].Applied)
	assert.True(t, events[1].CacheHit)
	assert.Equal(t, domain.TagNegative, events[1].Tag)

	// Results from another mode never hit.
	_, err = algebra.New(algebra.WithCache(cache), algebra.WithMode(algebra.ModeSymbolic)).Reduce(ctx, dsl.Neg(dsl.Neg("x")))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (*domain.Node, error) {
	return nil, errors.New("connection refused")
}

func (failingCache) Put(context.Context, string, *domain.Node) error {
	return errors.New("connection refused")
}

func TestEngine_CacheFailuresAreNotFatal(t *testing.T) {
	var buf bytes.Buffer
	eng := algebra.New(algebra.WithCache(failingCache{}), algebra.WithLogger(logging.NewWriter(&buf, 0)))

	out, err := eng.Reduce(context.Background(), dsl.Div("x", 1))
	require.NoError(t, err)
	assert.Equal(t, "x", out.String())
	assert.Contains(t, buf.String(), "cache read failed")
	assert.Contains(t, buf.String(), "cache write failed")
}

func TestEngine_ReduceWith(t *testing.T) {
	eng := algebra.New()
	var rules []string
	_, err := eng.ReduceWith(context.Background(), dsl.Div(dsl.Neg("x"), 1), domain.LifecycleHooks{
		OnRuleApplied: func(_ context.Context, e *domain.RuleEvent) { rules = append(rules, e.Rule) },
	})
	require.NoError(t, err)
	// The inner quotient is reduced before the negation it was moved under.
	assert.Equal(t, []string{"Algebra.divisionZeroOne", "Algebra.divisionNegatives"}, rules)
}

func TestEngine_Concurrent(t *testing.T) {
	eng := algebra.New(algebra.WithCache(memory.NewCache()))
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := eng.Reduce(context.Background(), dsl.Mul(2, dsl.Add("x", "y")))
			assert.NoError(t, err)
			assert.Equal(t, "Addition(Multiplication(2, x), Multiplication(2, y))", out.String())
		}()
	}
	wg.Wait()
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(algebra.Version))
}
