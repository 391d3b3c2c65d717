package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/algebra/internal/logging"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/registry"
)

// Mode selects which rules a session may run.
type Mode string

const (
	// ModeNumeric runs every registered rule.
	ModeNumeric Mode = "numeric"
	// ModeSymbolic skips rules registered with Symbolic == false.
	ModeSymbolic Mode = "symbolic"
)

// ParseMode resolves a mode name; the empty string means ModeNumeric.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeNumeric:
		return ModeNumeric, nil
	case ModeSymbolic:
		return ModeSymbolic, nil
	}
	return "", fmt.Errorf("unknown reduction mode %q", s)
}

// DefaultMaxDepth bounds the recursion of a single reduction.
const DefaultMaxDepth = 10000

// ErrDepthExceeded is the panic value raised when a reduction recurses past
// its maximum depth. Trees are acyclic, so this always points at a rule that
// keeps rewriting its own output.
var ErrDepthExceeded = errors.New("reduction depth exceeded")

// Session drives one reduction. It is not safe for concurrent use: the tree is
// exclusively owned by the session until the top-level Reduce returns.
type Session struct {
	registry *registry.Registry
	numeric  numeric.Context
	mode     Mode
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	maxDepth int

	depth   int
	applied int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the diagnostic sink. Applied rules are logged at Debug.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) SessionOption {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithNumeric sets the precision used for Approximate arithmetic.
func WithNumeric(ctx numeric.Context) SessionOption {
	return func(s *Session) {
		s.numeric = ctx
	}
}

// WithMode selects numeric or symbolic reduction.
func WithMode(mode Mode) SessionOption {
	return func(s *Session) {
		s.mode = mode
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) SessionOption {
	return func(s *Session) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// NewSession creates a session dispatching on reg.
func NewSession(reg *registry.Registry, opts ...SessionOption) *Session {
	s := &Session{
		registry: reg,
		numeric:  numeric.NewContext(numeric.DefaultDigits),
		mode:     ModeNumeric,
		logger:   logging.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Numeric returns the precision settings of the session.
func (s *Session) Numeric() numeric.Context { return s.numeric }

// Logger returns the diagnostic sink of the session.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Mode returns the reduction mode.
func (s *Session) Mode() Mode { return s.mode }

// Applied returns how many rule applications the session has performed.
func (s *Session) Applied() int { return s.applied }

// Reduce drives n to a fixpoint for its tag's chain and returns the node that
// now occupies n's position. Children are reduced first, left to right.
//
// A detached n is placed in a root slot for the duration of the call, so rules
// can replace it like any other node; the result is detached again.
func (s *Session) Reduce(ctx context.Context, n *domain.Node) *domain.Node {
	if !n.Attached() {
		release := domain.Slot(n)
		s.reduce(ctx, n)
		return release()
	}
	return s.reduce(ctx, n)
}

func (s *Session) reduce(ctx context.Context, n *domain.Node) *domain.Node {
	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.maxDepth {
		panic(fmt.Errorf("%w: %d levels at %s", ErrDepthExceeded, s.maxDepth, n.Tag().Short()))
	}

	pos := n.Position()
	for i := 0; i < n.Len(); i++ {
		s.reduce(ctx, n.Child(i))
	}

	for _, entry := range s.registry.Chain(n.Tag()) {
		if !entry.Config.Symbolic && s.mode == ModeSymbolic {
			continue
		}

		var before string
		trace := s.hooks.OnRuleApplied != nil || s.logger.Enabled(ctx, slog.LevelDebug)
		if trace {
			before = n.String()
		}

		if entry.Rule.Attempt(ctx, n, s) == registry.NotApplicable {
			continue
		}

		out := pos.Node()
		s.applied++
		if trace {
			after := out.String()
			s.logger.DebugContext(ctx, "rule applied",
				"tag", n.Tag().Short(),
				"rule", entry.Name,
				"before", before,
				"after", after,
			)
			if s.hooks.OnRuleApplied != nil {
				s.hooks.OnRuleApplied(ctx, &domain.RuleEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRuleApplied},
					Tag:       n.Tag(),
					Rule:      entry.Name,
					Depth:     s.depth,
					Before:    before,
					After:     after,
				})
			}
		}
		return out
	}
	return pos.Node()
}
