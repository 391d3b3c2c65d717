package rules

import (
	"context"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
)

// MultiplicationNegatives strips every Negative factor and keeps the sign in
// the coefficient:
//
//	[-]x [-]y [-]z   ->   x y z      when the number of negatives is even
//	                 ->   -1 x y z   when it is odd
//
// It edits the product in place and always reports NotApplicable, so the rest
// of the chain sees the stripped factors. It is registered as non-symbolic.
func MultiplicationNegatives(_ context.Context, n *domain.Node, _ ports.Session) registry.Outcome {
	negatives := 0
	for i := 0; i < n.Len(); i++ {
		if f := n.Child(i); f.Tag() == domain.TagNegative {
			n.SetChild(i, f.Child(0))
			negatives++
		}
	}
	if negatives%2 == 1 {
		negateLeading(n)
	}
	return registry.NotApplicable
}

// AdditionFlatten splices nested sums and unwraps a single term:
//
//	x + (y + z)   ->   x + y + z
//	+(x)          ->   x
func AdditionFlatten(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	if n.Len() == 1 {
		n.ReplaceBy(n.Child(0))
		return registry.Applied
	}
	if !splice(n) {
		return registry.NotApplicable
	}
	s.Reduce(ctx, n)
	return registry.Applied
}

// MultiplicationFlatten brings a product to its canonical shape: nested
// products are spliced, numeric factors are multiplied into one leading
// coefficient, an Exact one coefficient is dropped and a single factor is
// unwrapped. A product of Exact -1 and one other factor becomes a negation,
// so that -x has a single canonical form:
//
//	x (y z)   ->   x y z
//	x 2 y 3   ->   6 x y
//	1 x       ->   x
//	-1 x      ->   -x
func MultiplicationFlatten(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	if n.Len() == 1 {
		n.ReplaceBy(n.Child(0))
		return registry.Applied
	}

	changed := splice(n)
	if foldCoefficient(n, s.Numeric()) {
		changed = true
	}
	if changed {
		s.Reduce(ctx, n)
		return registry.Applied
	}

	if v, ok := valueOf(n.Child(0)); ok && n.Len() == 2 && v.IsExact() && v.IsNegative() && v.Negate().IsOne() {
		neg := domain.New(domain.TagNegative, n.Child(1))
		n.ReplaceBy(neg)
		s.Reduce(ctx, neg)
		return registry.Applied
	}
	return registry.NotApplicable
}

// splice replaces every child sharing n's tag by that child's own children.
func splice(n *domain.Node) bool {
	changed := false
	for i := 0; i < n.Len(); {
		c := n.Child(i)
		if c.Tag() != n.Tag() {
			i++
			continue
		}
		n.RemoveChildAt(i)
		for j, gc := range c.Children() {
			n.AddChildAt(i+j, gc)
		}
		changed = true
	}
	return changed
}

// foldCoefficient multiplies the numeric factors of a product into a single
// leading one, dropping it when it is Exact one and other factors remain.
func foldCoefficient(n *domain.Node, nc numeric.Context) bool {
	var (
		coefficient numeric.Value
		numbers     int
		rest        []*domain.Node
	)
	for _, c := range n.Children() {
		v, ok := valueOf(c)
		if !ok {
			rest = append(rest, c)
			continue
		}
		if numbers == 0 {
			coefficient = v
		} else {
			coefficient = nc.Mul(coefficient, v)
		}
		numbers++
	}

	if numbers == 0 {
		return false
	}
	drop := coefficient.IsExact() && coefficient.IsOne() && len(rest) > 0
	if numbers == 1 && !drop && n.Child(0).IsInternalNumber() {
		return false
	}

	for n.Len() > 0 {
		n.RemoveChildAt(n.Len() - 1)
	}
	if !drop {
		n.AddChild(domain.Number(coefficient))
	}
	for _, c := range rest {
		n.AddChild(c)
	}
	return true
}

// MultiplicationDistributiveOverAddition expands the first sum among the factors:
//
//	x (y + z)   ->   x y + x z
//
// Each term takes the sum's place among clones of the other factors.
func MultiplicationDistributiveOverAddition(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	at := -1
	for i := 0; i < n.Len(); i++ {
		if n.Child(i).Tag() == domain.TagAddition {
			at = i
			break
		}
	}
	if at < 0 {
		return registry.NotApplicable
	}

	factors := n.Children()
	sum := domain.New(domain.TagAddition)
	for _, term := range factors[at].Children() {
		m := domain.New(domain.TagMultiplication)
		for j, f := range factors {
			if j == at {
				m.AddChild(term.Clone())
				continue
			}
			m.AddChild(f.Clone())
		}
		sum.AddChild(m)
	}

	n.ReplaceBy(sum)
	s.Reduce(ctx, sum)
	return registry.Applied
}
