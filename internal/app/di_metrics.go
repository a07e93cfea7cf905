package app

import (
	"fmt"

	"github.com/allisson/aether/internal/http"
	"github.com/allisson/aether/internal/metrics"
)

// MetricsProvider returns the Prometheus-backed provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace, metrics.WithRuntimeCollectors())
		if err != nil {
			c.setErr("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
			return
		}
		c.metricsProvider = provider
	})
	if err := c.getErr("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the operation metrics recorder. It is a no-op when metrics
// are disabled, so services can always be decorated.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		bm, err := c.initBusinessMetrics()
		if err != nil {
			c.setErr("businessMetrics", err)
			return
		}
		c.businessMetrics = bm
	})
	if err := c.getErr("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// MetricsServer returns the /metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.setErr("metricsServer", fmt.Errorf("failed to get metrics provider for metrics server: %w", err))
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
	})
	if err := c.getErr("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return bm, nil
}
