// Package telemetry exposes request metrics of the back-office API in the
// Prometheus text format through the OpenTelemetry metrics SDK.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the instruments recorded by the HTTP middleware. Each
// instance owns its own Prometheus registry.
type Metrics struct {
	Requests  metric.Int64Counter
	Duration  metric.Float64Histogram
	Mutations metric.Int64Counter

	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewMetrics builds a meter provider exporting to a fresh Prometheus registry.
func NewMetrics(serviceName string) (*Metrics, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(serviceName)

	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests served"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	mutations, err := meter.Int64Counter("backoffice.mutations",
		metric.WithDescription("Number of successful create, update and delete operations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create mutation counter: %w", err)
	}

	return &Metrics{
		Requests:  requests,
		Duration:  duration,
		Mutations: mutations,
		registry:  registry,
		provider:  provider,
	}, nil
}

// Handler serves the Prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

// RecordMutation counts a successful write against collection.
func (m *Metrics) RecordMutation(ctx context.Context, collection, operation string) {
	if m == nil {
		return
	}
	m.Mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("collection", collection),
		attribute.String("operation", operation),
	))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// routeOf collapses a request path to its collection, so ids do not blow
// up label cardinality.
func routeOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}
	first, _, _ := strings.Cut(trimmed, "/")
	return "/" + first
}

// Middleware records the request count and latency of next.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", routeOf(r.URL.Path)),
			attribute.String("status", strconv.Itoa(sw.status)),
		)
		m.Requests.Add(r.Context(), 1, attrs)
		m.Duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
	})
}
