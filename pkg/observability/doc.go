/*
Package observability turns engine lifecycle hooks into Prometheus metrics.

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := algebra.New(algebra.WithLifecycleHooks(m.Hooks()))

Rule applications are counted per tag and rule name; reductions are counted
per root tag and cache outcome, and their durations are observed in a
histogram.
*/
package observability
