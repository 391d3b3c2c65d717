package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRuleApplied EventType = "rule_applied"
	EventReduce      EventType = "reduce"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RuleEvent is emitted each time a rule reports Applied.
// Before and After are only filled in when someone is listening.
type RuleEvent struct {
	EventBase
	Tag    Tag    `json:"tag"`
	Rule   string `json:"rule"`
	Depth  int    `json:"depth"`
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// ReduceEvent is emitted once per top-level reduction.
type ReduceEvent struct {
	EventBase
	Tag      Tag           `json:"tag"`
	Duration time.Duration `json:"duration"`
	Applied  int           `json:"applied"`
	CacheHit bool          `json:"cache_hit,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRuleApplied func(context.Context, *RuleEvent)
	OnReduce      func(context.Context, *ReduceEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRuleApplied: chain(h.OnRuleApplied, other.OnRuleApplied),
		OnReduce:      chain(h.OnReduce, other.OnReduce),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
