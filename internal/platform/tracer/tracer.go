// Package tracer provides a lightweight tracing abstraction for the custom
// domain services.
//
// The interface keeps OpenTelemetry out of service code. Implementations:
//   - NoopTracer: for tests
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording err when non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span. The returned context carries the span and
	// should be passed to child operations.
	//
	// Example:
	//   ctx, span := tracer.Start(ctx, tracer.SpanVerifyDomain,
	//       tracer.String(tracer.AttrDomain, domain),
	//   )
	//   defer span.End(nil)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanAddDomain    = "customdomain.add"
	SpanRemoveDomain = "customdomain.remove"
	SpanVerifyDomain = "customdomain.verify"
	SpanDNSTargets   = "customdomain.dns_targets"
	SpanProviderCall = "customdomain.provider.call"
	SpanDNSLookup    = "customdomain.dns.lookup"
	SpanSweep        = "customdomain.sweep"
)

// Attribute keys.
const (
	AttrTenantID    = "tenant.id"
	AttrDomain      = "domain"
	AttrHost        = "host"
	AttrOperation   = "operation"
	AttrOutcome     = "outcome"
	AttrState       = "verification.state"
	AttrDNSSource   = "dns.source"
	AttrBreakerOpen = "breaker.open"
	AttrAttempts    = "attempts"
)

// Event names.
const (
	EventDomainPersisted = "domain.persisted"
	EventEventPublished  = "event.published"
)
