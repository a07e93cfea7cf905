// Package metrics exposes OpenTelemetry instruments through a Prometheus registry:
// business operation metrics for the crypto, password and totp services and request
// metrics for the HTTP API.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// ProviderOption customizes the registry built by NewProvider.
type ProviderOption func(*prometheus.Registry) error

// WithRuntimeCollectors registers the Go runtime and process collectors.
func WithRuntimeCollectors() ProviderOption {
	return func(registry *prometheus.Registry) error {
		return registerAll(registry,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// WithBuildInfo exports a constant <namespace>_build_info gauge labelled with version.
func WithBuildInfo(namespace, version string) ProviderOption {
	return func(registry *prometheus.Registry) error {
		gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "build_info",
			Help:        "Build information of the running binary.",
			ConstLabels: prometheus.Labels{"version": version},
		}, func() float64 { return 1 })
		return registerAll(registry, gauge)
	}
}

func registerAll(registry *prometheus.Registry, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Provider pairs an OpenTelemetry meter provider with the registry it exports into.
type Provider struct {
	namespace     string
	meterProvider *metric.MeterProvider
	registry      *prometheus.Registry
}

// NewProvider builds a meter provider on a private registry. Callers prefix
// instrument names with namespace.
func NewProvider(namespace string, opts ...ProviderOption) (*Provider, error) {
	registry := prometheus.NewRegistry()
	for _, opt := range opts {
		if err := opt(registry); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	return &Provider{
		namespace:     namespace,
		meterProvider: metric.NewMeterProvider(metric.WithReader(exporter)),
		registry:      registry,
	}, nil
}

func (p *Provider) Namespace() string { return p.namespace }

func (p *Provider) MeterProvider() *metric.MeterProvider { return p.meterProvider }

// Handler serves the registry in Prometheus exposition format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Shutdown flushes pending measurements. A zero Provider is a no-op.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
