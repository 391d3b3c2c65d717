package testutils

import (
	"math/rand/v2"

	"github.com/aretw0/algebra/pkg/domain"
)

// DefaultMaxValue bounds the magnitude of generated integers.
const DefaultMaxValue = 9

// A Generator generates random expression trees.
type Generator struct {
	// Rand is the randomness source. It must be set.
	Rand *rand.Rand

	// VarNames stores the allowed symbol names.
	// If empty, x, y and z are used.
	VarNames []string

	// MaxValue bounds generated integers to [-MaxValue, MaxValue].
	// If this is 0, DefaultMaxValue is used.
	MaxValue int

	// NoNegatives disables Negative wrappers.
	NoNegatives bool

	// NoPowers disables Exponentiation nodes.
	NoPowers bool
}

// NewGenerator returns a generator with a fixed seed, so failures reproduce.
func NewGenerator(seed uint64) *Generator {
	return &Generator{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate generates a random tree with a given maximum nesting depth.
// If maxDepth is 0, the result is a leaf.
func (g *Generator) Generate(maxDepth int) *domain.Node {
	if maxDepth == 0 || g.Rand.IntN(maxDepth+1) == 0 {
		return g.leaf()
	}

	ops := []domain.Tag{domain.TagAddition, domain.TagMultiplication, domain.TagDivision}
	if !g.NoNegatives {
		ops = append(ops, domain.TagNegative)
	}
	if !g.NoPowers {
		ops = append(ops, domain.TagExponentiation)
	}

	switch tag := ops[g.Rand.IntN(len(ops))]; tag {
	case domain.TagNegative:
		return domain.New(tag, g.Generate(maxDepth-1))
	case domain.TagAddition, domain.TagMultiplication:
		children := make([]*domain.Node, 2+g.Rand.IntN(2))
		for i := range children {
			children[i] = g.Generate(maxDepth - 1)
		}
		return domain.New(tag, children...)
	case domain.TagExponentiation:
		// Small exact exponents keep the value finite and comparable.
		return domain.New(tag, g.Generate(maxDepth-1), domain.Int(int64(g.Rand.IntN(4))))
	default:
		return domain.New(tag, g.Generate(maxDepth-1), g.Generate(maxDepth-1))
	}
}

func (g *Generator) leaf() *domain.Node {
	if g.Rand.IntN(2) == 0 {
		names := g.VarNames
		if len(names) == 0 {
			names = []string{"x", "y", "z"}
		}
		return domain.Symbol(names[g.Rand.IntN(len(names))])
	}
	limit := g.MaxValue
	if limit == 0 {
		limit = DefaultMaxValue
	}
	return domain.Int(int64(g.Rand.IntN(2*limit+1) - limit))
}
