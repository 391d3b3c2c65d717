package registry

import (
	"context"
	"sync"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/ports"
)

// Outcome is the result of one rule attempt.
type Outcome int

const (
	// NotApplicable means the rule declined: the node keeps its tag, child
	// count and child identities, and dispatch moves on to the next rule.
	NotApplicable Outcome = iota
	// Applied means the rule rewrote the tree; the position may now hold a
	// different node and dispatch stops.
	Applied
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "not_applicable"
}

// Rule is a rewrite bound to a tag.
type Rule interface {
	Attempt(ctx context.Context, n *domain.Node, s ports.Session) Outcome
}

// RuleFunc adapts an ordinary function to the Rule interface.
type RuleFunc func(ctx context.Context, n *domain.Node, s ports.Session) Outcome

// Attempt calls f(ctx, n, s).
func (f RuleFunc) Attempt(ctx context.Context, n *domain.Node, s ports.Session) Outcome {
	return f(ctx, n, s)
}

// Config holds the per-registration settings of a rule.
type Config struct {
	// Symbolic marks rules that also apply outside numeric evaluation.
	// Rules with Symbolic == false are skipped by symbolic sessions.
	Symbolic bool
}

// Option configures a registration.
type Option func(*Config)

// WithSymbolic sets the Symbolic flag (true by default).
func WithSymbolic(symbolic bool) Option {
	return func(c *Config) {
		c.Symbolic = symbolic
	}
}

// Entry is one registered rule in a chain.
type Entry struct {
	Name   string
	Rule   Rule
	Config Config
}

// Registry holds the ordered rule chain of every tag.
// Registration order is priority order.
type Registry struct {
	mu     sync.RWMutex
	chains map[domain.Tag][]Entry
	order  []domain.Tag
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		chains: make(map[domain.Tag][]Entry),
	}
}

// AddReducer appends rule to the end of tag's chain.
func (r *Registry) AddReducer(tag domain.Tag, rule Rule, name string, opts ...Option) {
	cfg := Config{Symbolic: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chains[tag]; !ok {
		r.order = append(r.order, tag)
	}
	r.chains[tag] = append(r.chains[tag], Entry{Name: name, Rule: rule, Config: cfg})
}

// Chain returns the rules bound to tag in priority order.
// An empty chain means nodes with that tag are already canonical.
func (r *Registry) Chain(tag domain.Tag) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.chains[tag]...)
}

// Tags returns the tags that have a chain, in first-registration order.
func (r *Registry) Tags() []domain.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Tag(nil), r.order...)
}

// Description is a serializable view of one registration.
type Description struct {
	Tag      domain.Tag `json:"tag" yaml:"tag"`
	Name     string     `json:"name" yaml:"name"`
	Priority int        `json:"priority" yaml:"priority"`
	Symbolic bool       `json:"symbolic" yaml:"symbolic"`
}

// Describe lists every registration, grouped by tag in priority order.
func (r *Registry) Describe() []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Description
	for _, tag := range r.order {
		for i, e := range r.chains[tag] {
			out = append(out, Description{Tag: tag, Name: e.Name, Priority: i, Symbolic: e.Config.Symbolic})
		}
	}
	return out
}
