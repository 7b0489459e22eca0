package service

import (
	"log/slog"
	"time"

	tenantmetrics "whitelabel/internal/tenant/metrics"
)

type serviceConfig struct {
	logger  *slog.Logger
	metrics *tenantmetrics.Metrics
	now     func() time.Time
}

// Option configures a service.
type Option func(c *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithMetrics(m *tenantmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

// WithClock overrides time.Now for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(c *serviceConfig) {
		if now != nil {
			c.now = now
		}
	}
}
