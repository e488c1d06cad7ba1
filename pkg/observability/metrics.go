package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records navigator and search activity.
type Metrics struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	selections *prometheus.CounterVec
	results    *prometheus.CounterVec
	backs      prometheus.Counter
	resets     prometheus.Counter
	lookups    *prometheus.CounterVec
	latency    prometheus.Histogram
	hits       prometheus.Histogram
}

// Option configures Metrics.
type Option func(*Metrics)

// WithLogger logs every recorded event at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Metrics) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMetrics registers the collectors on a private registry.
func NewMetrics(opts ...Option) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   logging.NewNop(),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_selections_total",
			Help: "Options selected, by source and target node.",
		}, []string{"from", "to"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_results_total",
			Help: "Recommendations reached, by result id.",
		}, []string{"result"}),
		backs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wayfinder_backs_total",
			Help: "Back navigations.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wayfinder_resets_total",
			Help: "Sessions reset to the root step.",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_search_lookups_total",
			Help: "Search lookups by outcome (ok, failed, stale).",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfinder_search_duration_seconds",
			Help:    "Search index latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		hits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfinder_search_results",
			Help:    "Results shown per successful lookup.",
			Buckets: prometheus.LinearBuckets(0, 1, 9),
		}),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.registry.MustRegister(
		m.selections, m.results, m.backs, m.resets,
		m.lookups, m.latency, m.hits,
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NavigationHooks records navigator events.
func (m *Metrics) NavigationHooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSelect: func(ctx context.Context, e *domain.NavigationEvent) {
			m.selections.WithLabelValues(e.FromID, e.ToID).Inc()
			m.logger.Debug("select", "session_id", e.SessionID, "from", e.FromID, "to", e.ToID, "depth", e.Depth)
		},
		OnResult: func(ctx context.Context, e *domain.NavigationEvent) {
			m.results.WithLabelValues(e.ToID).Inc()
			m.logger.Debug("result_reached", "session_id", e.SessionID, "result", e.ToID)
		},
		OnBack: func(ctx context.Context, e *domain.NavigationEvent) {
			m.backs.Inc()
		},
		OnReset: func(ctx context.Context, e *domain.NavigationEvent) {
			m.resets.Inc()
		},
	}
}

// SearchHooks records lookup outcomes.
func (m *Metrics) SearchHooks() domain.SearchHooks {
	return domain.SearchHooks{
		OnResults: func(e *domain.LookupEvent) {
			m.lookups.WithLabelValues("ok").Inc()
			m.latency.Observe(e.Duration.Seconds())
			m.hits.Observe(float64(e.Hits))
		},
		OnFailure: func(e *domain.LookupEvent) {
			m.lookups.WithLabelValues("failed").Inc()
			m.latency.Observe(e.Duration.Seconds())
		},
		OnStale: func(e *domain.LookupEvent) {
			m.lookups.WithLabelValues("stale").Inc()
		},
	}
}
