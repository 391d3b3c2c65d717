package ports

import (
	"context"
	"log/slog"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
)

// Session is what a rule sees of the reduction in progress.
type Session interface {
	// Reduce drives n to a fixpoint for its tag's chain and returns the node
	// now occupying n's position. The old reference may be stale afterwards.
	Reduce(ctx context.Context, n *domain.Node) *domain.Node

	// Numeric returns the precision settings for Approximate arithmetic.
	Numeric() numeric.Context

	// Logger returns the diagnostic sink of the session.
	Logger() *slog.Logger
}

// Engine is the surface used by adapters that reduce untrusted input per request.
type Engine interface {
	// Reduce validates and reduces a detached tree, returning its canonical form.
	Reduce(ctx context.Context, n *domain.Node) (*domain.Node, error)
}
