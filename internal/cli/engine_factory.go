package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/algebra"
	"github.com/aretw0/algebra/internal/config"
	"github.com/aretw0/algebra/internal/runtime"
	"github.com/aretw0/algebra/pkg/adapters/memory"
	"github.com/aretw0/algebra/pkg/adapters/redis"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/observability"
	"github.com/aretw0/algebra/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"
)

// Services bundles an engine with the resources built for it.
type Services struct {
	Engine  *algebra.Engine
	Metrics *observability.Metrics
	// Gatherer exposes the metrics registry for /metrics.
	Gatherer prometheus.Gatherer

	closers []func() error
}

// Close releases the cache connection, if any.
func (s *Services) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewServices initializes an engine with standard CLI conventions: mode,
// precision and depth from cfg, the configured cache backend and Prometheus
// metrics on a private registry. Extra options are applied last.
func NewServices(ctx context.Context, cfg config.Config, logger *slog.Logger, extra ...algebra.Option) (*Services, error) {
	mode, err := runtime.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	svc := &Services{Metrics: metrics, Gatherer: reg}

	opts := []algebra.Option{
		algebra.WithLogger(logger),
		algebra.WithPrecision(cfg.Precision),
		algebra.WithMode(mode),
		algebra.WithMaxDepth(cfg.MaxDepth),
		algebra.WithLifecycleHooks(metrics.Hooks()),
	}

	cache, err := newCache(ctx, cfg, svc)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		opts = append(opts, algebra.WithCache(cache))
		logger.Debug("cache enabled", "backend", cfg.Cache.Backend)
	}

	svc.Engine = algebra.New(append(opts, extra...)...)
	return svc, nil
}

func newCache(ctx context.Context, cfg config.Config, svc *Services) (ports.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return memory.NewCache(memory.WithMaxEntries(cfg.Cache.MaxEntries)), nil
	case config.CacheRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		cache := redis.NewFromClient(client,
			redis.WithPrefix(cfg.Cache.Prefix),
			redis.WithTTL(cfg.Cache.TTL),
			redis.WithNumeric(numeric.NewContext(cfg.Precision)),
		)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Cache.Address, err)
		}
		svc.closers = append(svc.closers, cache.Close)
		return cache, nil
	}
	return nil, nil
}
