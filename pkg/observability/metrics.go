package observability

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/descent/internal/logging"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	compiles       *prometheus.CounterVec
	samples        prometheus.Counter
	sampleGaps     prometheus.Counter
	sampleDuration prometheus.Histogram
	traces         *prometheus.CounterVec
	tracePoints    prometheus.Histogram
	traceDuration  prometheus.Histogram
}

// NewMetrics creates and registers the engine collectors, plus the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "descent_compiles_total",
				Help: "Total number of expression compilations",
			},
			[]string{"result"},
		),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "descent_surface_samples_total",
			Help: "Total number of sampled surfaces",
		}),
		sampleGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "descent_surface_gap_cells_total",
			Help: "Total number of undefined surface cells",
		}),
		sampleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "descent_surface_duration_seconds",
			Help:    "Duration of surface sampling",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "descent_traces_total",
				Help: "Total number of gradient traces",
			},
			[]string{"reason", "status"},
		),
		tracePoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "descent_trace_points",
			Help:    "Number of waypoints per trace",
			Buckets: prometheus.LinearBuckets(0, 25, 11),
		}),
		traceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "descent_trace_duration_seconds",
			Help:    "Duration of gradient traces",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
	}
	m.registry.MustRegister(
		m.compiles, m.samples, m.sampleGaps, m.sampleDuration,
		m.traces, m.tracePoints, m.traceDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks that record metrics and log each event.
// A nil logger disables logging.
func (m *Metrics) Hooks(logger *slog.Logger) domain.LifecycleHooks {
	if logger == nil {
		logger = logging.NewNop()
	}
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			if e.Err != nil {
				m.compiles.WithLabelValues("error").Inc()
				logger.WarnContext(ctx, "compile_failed", "markup", e.Markup, "error", e.Err)
				return
			}
			result := "symbolic"
			if e.NumericGradient {
				result = "numeric"
			}
			m.compiles.WithLabelValues(result).Inc()
			logger.InfoContext(ctx, "compile", "expression", e.Expression, "gradient", result)
		},
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			m.samples.Inc()
			m.sampleGaps.Add(float64(e.Gaps))
			m.sampleDuration.Observe(e.Duration.Seconds())
			logger.DebugContext(ctx, "sample", "cells", e.Cells, "gaps", e.Gaps, "duration", e.Duration)
		},
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			m.traces.WithLabelValues(string(e.Reason), string(e.Status)).Inc()
			m.tracePoints.Observe(float64(e.Points))
			m.traceDuration.Observe(e.Duration.Seconds())
			logger.DebugContext(ctx, "trace", "reason", e.Reason, "status", e.Status, "points", e.Points)
		},
	}
}

// Chain merges hooks so that each event reaches every non-nil callback in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			for _, h := range hooks {
				if h.OnCompile != nil {
					h.OnCompile(ctx, e)
				}
			}
		},
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			for _, h := range hooks {
				if h.OnSample != nil {
					h.OnSample(ctx, e)
				}
			}
		},
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			for _, h := range hooks {
				if h.OnTrace != nil {
					h.OnTrace(ctx, e)
				}
			}
		},
	}
}
