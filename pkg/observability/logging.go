package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/algebra/pkg/domain"
)

// LogHooks logs every reduction at Info and every rule application at Debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRuleApplied: func(ctx context.Context, e *domain.RuleEvent) {
			logger.DebugContext(ctx, "rule_applied",
				"rule", e.Rule,
				"depth", e.Depth,
			)
		},
		OnReduce: func(ctx context.Context, e *domain.ReduceEvent) {
			logger.InfoContext(ctx, "reduce",
				"tag", e.Tag.Short(),
				"applied", e.Applied,
				"cache_hit", e.CacheHit,
				"duration", e.Duration,
			)
		},
	}
}
