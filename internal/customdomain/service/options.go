package service

import (
	"log/slog"
	"time"

	cdmetrics "whitelabel/internal/customdomain/metrics"
	"whitelabel/internal/platform/tracer"
	"whitelabel/pkg/platform/circuit"
)

// RetryPolicy bounds provider add/remove retries.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxElapsed      time.Duration
}

var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:     3,
	InitialInterval: 250 * time.Millisecond,
	MaxElapsed:      5 * time.Second,
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *cdmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPublisher sets the domain event sink. Without one, events are dropped.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithVerifyBreaker replaces the breaker guarding provider verification checks.
func WithVerifyBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		if b != nil {
			s.breaker = b
		}
	}
}

// WithPlatformDomains lists the domains tenants reach by slug; they can never
// be attached as custom domains.
func WithPlatformDomains(domains ...string) Option {
	return func(s *Service) {
		s.platformDomains = append([]string(nil), domains...)
	}
}

// WithAcceptedIPs adds A-record values that count as correctly configured
// beyond the provider default and recommendations.
func WithAcceptedIPs(ips ...string) Option {
	return func(s *Service) {
		s.acceptedIPs = append([]string(nil), ips...)
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Service) {
		if p.MaxAttempts > 0 {
			s.retry = p
		}
	}
}
