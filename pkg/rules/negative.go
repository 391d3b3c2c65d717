package rules

import (
	"context"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
)

// NegativeOfNegative cancels a double negation:
//
//	--x   ->   x
func NegativeOfNegative(_ context.Context, n *domain.Node, _ ports.Session) registry.Outcome {
	arg := n.Child(0)
	if arg.Tag() != domain.TagNegative {
		return registry.NotApplicable
	}
	n.ReplaceBy(arg.Child(0))
	return registry.Applied
}

// NegativeOfAddition pushes a negation into every term:
//
//	-(x + y + z)   ->   -x - y - z
func NegativeOfAddition(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	add := n.Child(0)
	if add.Tag() != domain.TagAddition {
		return registry.NotApplicable
	}

	for i := 0; i < add.Len(); i++ {
		add.SetChild(i, domain.New(domain.TagNegative, add.Child(i)))
	}
	n.ReplaceBy(add)

	// Reduces each new negation first, then flattens terms that became sums.
	s.Reduce(ctx, add)
	return registry.Applied
}

// NegativeOfMultiplication moves the sign into the coefficient:
//
//	-(x y z)   ->   -1 x y z
//	-(c x y)   ->   -c x y
func NegativeOfMultiplication(ctx context.Context, n *domain.Node, s ports.Session) registry.Outcome {
	mul := n.Child(0)
	if mul.Tag() != domain.TagMultiplication {
		return registry.NotApplicable
	}

	negateLeading(mul)
	n.ReplaceBy(mul)
	s.Reduce(ctx, mul)
	return registry.Applied
}
