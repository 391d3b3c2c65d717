package rules_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/aretw0/algebra/internal/runtime"
	"github.com/aretw0/algebra/internal/testutils"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/registry"
	"github.com/aretw0/algebra/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samples = 300

func TestProperty_Idempotence(t *testing.T) {
	g := testutils.NewGenerator(1)
	for i := range samples {
		e := reduce(g.Generate(4))
		again := reduce(e.Clone())
		require.True(t, domain.Equal(e, again), "sample %d: %s reduced again to %s", i, e, again)
	}
}

func TestProperty_DoubleNegation(t *testing.T) {
	g := testutils.NewGenerator(2)
	for i := range samples {
		x := g.Generate(4)
		want := reduce(x.Clone())
		got := reduce(domain.New(domain.TagNegative, domain.New(domain.TagNegative, x)))
		require.True(t, domain.Equal(want, got), "sample %d: want %s, got %s", i, want, got)
	}
}

func TestProperty_ValuePreserved(t *testing.T) {
	env := map[string]float64{"x": 1.5, "y": -2.25, "z": 3}
	g := testutils.NewGenerator(3)
	g.NoPowers = true

	for i := range samples {
		var orig *domain.Node
		if i%2 == 0 {
			// Distribution is the interesting case: a (b + c).
			orig = domain.New(domain.TagMultiplication, g.Generate(2),
				domain.New(domain.TagAddition, g.Generate(2), g.Generate(2)))
		} else {
			orig = g.Generate(4)
		}

		want, err := testutils.Evaluate(orig, env)
		require.NoError(t, err)
		if !isFinite(want) {
			continue
		}

		reduced := reduce(orig.Clone())
		got, err := testutils.Evaluate(reduced, env)
		require.NoError(t, err)
		assert.True(t, testutils.Close(want, got), "sample %d: %s = %v but %s = %v", i, orig, want, reduced, got)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func TestProperty_Identities(t *testing.T) {
	g := testutils.NewGenerator(4)
	for i := range samples {
		x := g.Generate(3)
		want := reduce(x.Clone())

		t.Run(fmt.Sprintf("sample %d", i), func(t *testing.T) {
			assert.True(t, domain.Equal(want, reduce(domain.New(domain.TagDivision, x.Clone(), domain.Int(1)))), "x / 1")
			assert.True(t, domain.Equal(want, reduce(domain.New(domain.TagExponentiation, x.Clone(), domain.Int(1)))), "x ^ 1")
			assert.True(t, domain.Equal(domain.Undefined(), reduce(domain.New(domain.TagDivision, x.Clone(), domain.Int(0)))), "x / 0")
			assert.True(t, domain.Equal(domain.Int(1), reduce(domain.New(domain.TagExponentiation, x.Clone(), domain.Int(0)))), "x ^ 0")
			assert.True(t, domain.Equal(domain.Int(1), reduce(domain.New(domain.TagExponentiation, domain.Int(1), x.Clone()))), "1 ^ x")

			if !want.IsInternalNumber() && !negatedNumber(want) {
				assert.True(t, domain.Equal(domain.Int(0), reduce(domain.New(domain.TagDivision, domain.Int(0), x.Clone()))), "0 / x")
			}
		})
	}
}

func negatedNumber(n *domain.Node) bool {
	return n.Tag() == domain.TagNegative && n.Child(0).IsInternalNumber()
}

// Every rule that declines, except MultiplicationNegatives, leaves the node's
// shape untouched.
func TestProperty_ForwardingPurity(t *testing.T) {
	reg := rules.NewRegistry()
	s := runtime.NewSession(reg)
	g := testutils.NewGenerator(5)

	byTag := map[domain.Tag][]*domain.Node{}
	for range samples {
		domain.Walk(g.Generate(4), func(n *domain.Node) bool {
			byTag[n.Tag()] = append(byTag[n.Tag()], n)
			return true
		})
	}

	for _, tag := range reg.Tags() {
		for _, entry := range reg.Chain(tag) {
			if entry.Name == rules.Prefix+"multiplicationNegatives" {
				continue
			}
			for _, sample := range byTag[tag] {
				n := sample.Clone()
				release := domain.Slot(n)
				snap := domain.Take(n)
				before := n.String()

				if entry.Rule.Attempt(context.Background(), n, s) == registry.NotApplicable {
					require.True(t, snap.Same(n), "%s changed %s into %s", entry.Name, before, n)
				}
				release()
			}
		}
	}
}
