package algebra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/algebra/internal/logging"
	"github.com/aretw0/algebra/internal/runtime"
	"github.com/aretw0/algebra/pkg/codec"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/aretw0/algebra/pkg/registry"
	"github.com/aretw0/algebra/pkg/rules"
)

// ErrReductionFailed wraps a panic raised while reducing, such as a rule
// meeting a node that breaks the structural invariants.
var ErrReductionFailed = errors.New("reduction failed")

// ErrAttached is returned when Reduce is given a node that still has a parent.
var ErrAttached = errors.New("expression must be detached")

// Mode selects which rules run.
type Mode = runtime.Mode

const (
	ModeNumeric  = runtime.ModeNumeric
	ModeSymbolic = runtime.ModeSymbolic
)

// Engine is the high-level entry point of the library.
// It is safe for concurrent use; every Reduce call runs its own session over
// a tree the caller hands over.
type Engine struct {
	registry *registry.Registry
	cache    ports.Cache
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	numeric  numeric.Context
	digits   uint
	mode     Mode
	maxDepth int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPrecision sets the number of decimal digits used for Approximate arithmetic.
func WithPrecision(digits uint) Option {
	return func(e *Engine) {
		e.digits = digits
	}
}

// WithMode selects numeric (default) or symbolic reduction.
func WithMode(mode Mode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// WithCache memoizes reductions. Cache failures are logged and otherwise ignored.
func WithCache(cache ports.Cache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithRegistry replaces the default algebra rules.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithMaxDepth bounds the recursion of a single reduction.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// New initializes an Engine with the algebra rules.
func New(opts ...Option) *Engine {
	eng := &Engine{
		digits:   numeric.DefaultDigits,
		mode:     ModeNumeric,
		maxDepth: runtime.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.registry == nil {
		eng.registry = rules.NewRegistry()
	}
	eng.numeric = numeric.NewContext(eng.digits)
	return eng
}

// Registry returns the rule chains the engine dispatches on.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Numeric returns the precision settings of the engine.
func (e *Engine) Numeric() numeric.Context {
	return e.numeric
}

// Precision returns the number of decimal digits used for Approximate arithmetic.
func (e *Engine) Precision() uint {
	return e.digits
}

// Mode returns the reduction mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Session creates a reduction session configured like the engine.
// Sessions are single-use and not safe for concurrent use.
func (e *Engine) Session(hooks ...domain.LifecycleHooks) *runtime.Session {
	h := e.hooks
	for _, extra := range hooks {
		h = h.Merge(extra)
	}
	return runtime.NewSession(e.registry,
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(h),
		runtime.WithNumeric(e.numeric),
		runtime.WithMode(e.mode),
		runtime.WithMaxDepth(e.maxDepth),
	)
}

// Reduce validates n and drives it to its canonical form.
// n must be detached; it is consumed by the call and must not be used
// afterwards. The context is only consulted before the reduction starts and
// before the result is cached: a reduction is never interrupted halfway.
func (e *Engine) Reduce(ctx context.Context, n *domain.Node) (*domain.Node, error) {
	return e.reduce(ctx, n)
}

// ReduceWith is Reduce with additional hooks for this call only.
func (e *Engine) ReduceWith(ctx context.Context, n *domain.Node, hooks domain.LifecycleHooks) (*domain.Node, error) {
	return e.reduce(ctx, n, hooks)
}

func (e *Engine) reduce(ctx context.Context, n *domain.Node, hooks ...domain.LifecycleHooks) (out *domain.Node, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: nil expression", domain.ErrMalformed)
	}
	if n.Attached() {
		return nil, ErrAttached
	}
	if err := domain.Validate(n); err != nil {
		return nil, err
	}

	start := time.Now()
	key := e.cacheKey(n)
	if hit := e.lookup(ctx, key); hit != nil {
		e.emitReduce(ctx, n.Tag(), start, 0, true, hooks)
		return hit, nil
	}

	s := e.Session(hooks...)
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			e.logger.ErrorContext(ctx, "reduction panicked", "error", cause, "tag", n.Tag().Short())
			out, err = nil, fmt.Errorf("%w: %w", ErrReductionFailed, cause)
		}
	}()

	tag := n.Tag()
	out = s.Reduce(ctx, n)
	e.emitReduce(ctx, tag, start, s.Applied(), false, hooks)

	if key != "" && ctx.Err() == nil {
		if err := e.cache.Put(ctx, key, out); err != nil {
			e.logger.WarnContext(ctx, "cache write failed", "error", err)
		}
	}
	return out, nil
}

func (e *Engine) cacheKey(n *domain.Node) string {
	if e.cache == nil {
		return ""
	}
	return codec.Digest(n, fmt.Sprintf("%s/%d", e.mode, e.numeric.Precision))
}

func (e *Engine) lookup(ctx context.Context, key string) *domain.Node {
	if key == "" {
		return nil
	}
	hit, err := e.cache.Get(ctx, key)
	switch {
	case err == nil:
		return hit
	case !errors.Is(err, ports.ErrCacheMiss):
		e.logger.WarnContext(ctx, "cache read failed", "error", err)
	}
	return nil
}

func (e *Engine) emitReduce(ctx context.Context, tag domain.Tag, start time.Time, applied int, hit bool, extra []domain.LifecycleHooks) {
	h := e.hooks
	for _, x := range extra {
		h = h.Merge(x)
	}
	if h.OnReduce == nil {
		return
	}
	h.OnReduce(ctx, &domain.ReduceEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventReduce},
		Tag:       tag,
		Duration:  time.Since(start),
		Applied:   applied,
		CacheHit:  hit,
	})
}
