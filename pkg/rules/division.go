package rules

import (
	"context"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
)

// DivisionNegatives moves signs out of a quotient:
//
//	-x /  y   ->   -(x / y)
//	 x / -y   ->   -(x / y)
//	-x / -y   ->     x / y
//
// A quotient with a zero on either side, negated or not, is left to
// DivisionZeroOne.
func DivisionNegatives(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	if isZero(n.Child(0)) || isZero(n.Child(1)) {
		return registry.NotApplicable
	}

	stripped := 0
	for i := range 2 {
		if c := n.Child(i); c.Tag() == domain.TagNegative {
			n.SetChild(i, c.Child(0))
			stripped++
		}
	}

	switch stripped {
	case 2:
		s.Reduce(ctx, n)
		return registry.Applied
	case 1:
		neg := domain.New(domain.TagNegative)
		n.ReplaceBy(neg)
		neg.AddChild(n)
		// Reduces the quotient before the new negation.
		s.Reduce(ctx, neg)
		return registry.Applied
	}
	return registry.NotApplicable
}

// DivisionZeroOne handles numeric zero and one:
//
//	x / 0   ->   Undefined
//	x / 1   ->   x
//	0 / x   ->   0
//
// A negated zero counts as zero on either side.
func DivisionZeroOne(_ context.Context, n *domain.Node, _ ports.Session) registry.Outcome {
	num, den := n.Child(0), n.Child(1)

	if isZero(den) {
		n.ReplaceBy(domain.Undefined())
		return registry.Applied
	}
	if d, ok := valueOf(den); ok && d.IsOne() {
		n.ReplaceBy(num)
		return registry.Applied
	}

	if isZero(num) {
		n.ReplaceBy(num)
		return registry.Applied
	}
	return registry.NotApplicable
}

// isZero reports whether n is a numeric zero or the negation of one.
func isZero(n *domain.Node) bool {
	if n.Tag() == domain.TagNegative {
		n = n.Child(0)
	}
	v, ok := valueOf(n)
	return ok && v.IsZero()
}

// leadingCoefficient returns the numeric first factor of a product with at
// least one other factor.
func leadingCoefficient(n *domain.Node) (numeric.Value, bool) {
	if n.Tag() != domain.TagMultiplication || n.Len() < 2 {
		return numeric.Value{}, false
	}
	return valueOf(n.Child(0))
}

// stripCoefficient removes the leading factor of the product at side i of a
// quotient, unwrapping a product left with a single factor.
func stripCoefficient(div *domain.Node, i int) *domain.Node {
	mul := div.Child(i)
	mul.RemoveChildAt(0)
	if mul.Len() == 1 {
		rest := mul.Child(0)
		div.SetChild(i, rest)
		return rest
	}
	return mul
}

// DivisionExtractNumerics pulls numeric coefficients out of a quotient:
//
//	(c x) / y         ->   c (x / y)
//	x / (d y)         ->   1/d (x / y)
//	(c x) / (d y)     ->   c/d (x / y)
//
// A denominator coefficient is only extracted when the result stays exact for
// exact operands; otherwise the quotient is left alone.
func DivisionExtractNumerics(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	c, hasNum := leadingCoefficient(n.Child(0))
	d, hasDen := leadingCoefficient(n.Child(1))
	if !hasNum && !hasDen {
		return registry.NotApplicable
	}

	nc := s.Numeric()
	if !hasNum {
		c = nc.One(d)
	}

	coefficient := c
	if hasDen {
		if d.IsZero() {
			return registry.NotApplicable
		}
		if c.IsExact() && d.IsExact() && !numeric.Divides(c, d) {
			return registry.NotApplicable
		}
		coefficient = nc.Quo(c, d)
	}

	var touched []*domain.Node
	if hasNum {
		touched = append(touched, stripCoefficient(n, 0))
	}
	if hasDen {
		touched = append(touched, stripCoefficient(n, 1))
	}

	mul := domain.New(domain.TagMultiplication)
	n.ReplaceBy(mul)
	mul.AddChild(domain.Number(coefficient))
	mul.AddChild(n)

	for _, t := range touched {
		s.Reduce(ctx, t)
	}
	s.Reduce(ctx, n)
	s.Reduce(ctx, mul)
	return registry.Applied
}

// DivisionExtractNumericsAlone handles a quotient with exactly one numeric side:
//
//	c / x   ->   c (1 / x)    when c != 1
//	x / d   ->   1/d x
//
// The denominator form is only used when 1/d is exact or d is approximate.
func DivisionExtractNumericsAlone(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	num, den := n.Child(0), n.Child(1)
	c, numIsNumber := valueOf(num)
	d, denIsNumber := valueOf(den)
	if numIsNumber == denIsNumber {
		return registry.NotApplicable
	}

	nc := s.Numeric()
	var mul *domain.Node
	switch {
	case numIsNumber:
		if c.IsOne() {
			return registry.NotApplicable
		}
		one := domain.Int(1)
		n.SetChild(0, one)
		mul = domain.New(domain.TagMultiplication, num)
		n.ReplaceBy(mul)
		mul.AddChild(n)
	default:
		one := nc.One()
		if d.IsZero() || (d.IsExact() && !numeric.Divides(one, d)) {
			return registry.NotApplicable
		}
		mul = domain.New(domain.TagMultiplication, domain.Number(nc.Quo(one, d)))
		n.ReplaceBy(mul)
		mul.AddChild(num)
	}

	s.Reduce(ctx, mul)
	return registry.Applied
}
