package rules

import (
	"context"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
)

// ExponentiationSpecials handles numeric zero and one:
//
//	x ^ 0     ->   1
//	x ^ 1     ->   x
//	x ^ 1.0   ->   Numeric(x)
//	1 ^ x     ->   1
//
// A synthesized 1 is Approximate when the exponent or a numeric base is.
// 0 ^ x is left alone: the sign of a symbolic exponent is unknown.
func ExponentiationSpecials(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	base, exponent := n.Child(0), n.Child(1)
	b, baseIsNumber := valueOf(base)
	e, exponentIsNumber := valueOf(exponent)

	var operands []numeric.Value
	if baseIsNumber {
		operands = append(operands, b)
	}
	if exponentIsNumber {
		operands = append(operands, e)
	}

	switch {
	case exponentIsNumber && e.IsZero():
		n.ReplaceBy(domain.Number(s.Numeric().One(operands...)))
		return registry.Applied

	case exponentIsNumber && e.IsOne() && e.IsExact():
		n.ReplaceBy(base)
		return registry.Applied

	case exponentIsNumber && e.IsOne():
		coerce := domain.New(domain.TagNumeric, base)
		n.ReplaceBy(coerce)
		s.Reduce(ctx, coerce)
		return registry.Applied

	case baseIsNumber && b.IsOne():
		n.ReplaceBy(domain.Number(s.Numeric().One(operands...)))
		return registry.Applied
	}
	return registry.NotApplicable
}

// ExponentiationMultiplicationOrDivision distributes an exact exponent:
//
//	(x y z) ^ k   ->   x^k y^k z^k
//	(x / y) ^ k   ->   x^k / y^k
func ExponentiationMultiplicationOrDivision(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	base, exponent := n.Child(0), n.Child(1)
	if base.Tag() != domain.TagMultiplication && base.Tag() != domain.TagDivision {
		return registry.NotApplicable
	}
	if e, ok := valueOf(exponent); !ok || !e.IsExact() {
		return registry.NotApplicable
	}

	for i := 0; i < base.Len(); i++ {
		base.SetChild(i, domain.New(domain.TagExponentiation, base.Child(i), exponent.Clone()))
	}
	n.ReplaceBy(base)

	// Reduces every new power before the base itself.
	s.Reduce(ctx, base)
	return registry.Applied
}

// NumericCoercion evaluates its argument numerically: every Exact number in
// the subtree becomes Approximate at the session precision.
//
//	Numeric(x)   ->   x
func NumericCoercion(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	arg := n.Child(0)
	nc := s.Numeric()
	domain.Walk(arg, func(c *domain.Node) bool {
		if v, ok := valueOf(c); ok && v.IsExact() {
			c.SetValue(nc.ToApproximate(v))
		}
		return true
	})

	n.ReplaceBy(arg)
	s.Reduce(ctx, arg)
	return registry.Applied
}
