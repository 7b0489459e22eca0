package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	cdmetrics "whitelabel/internal/customdomain/metrics"
	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/platform/tracer"
	"whitelabel/internal/sentinel"
	tenantmodels "whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
	"whitelabel/pkg/platform/circuit"
	request "whitelabel/pkg/platform/middleware/request"
)

// VerifyBreakerName names the breaker around provider verification checks.
const VerifyBreakerName = "provider.verify"

// Service provisions, describes and verifies tenant custom domains.
// Handlers are stateless; all state lives in the tenant directory.
type Service struct {
	tenants   TenantDirectory
	provider  DomainProvider
	resolver  DNSResolver
	publisher EventPublisher

	breaker *circuit.Breaker
	tracer  tracer.Tracer
	logger  *slog.Logger
	metrics *cdmetrics.Metrics
	now     func() time.Time

	platformDomains []string
	acceptedIPs     []string
	retry           RetryPolicy
}

func New(tenants TenantDirectory, provider DomainProvider, resolver DNSResolver, opts ...Option) *Service {
	s := &Service{
		tenants:  tenants,
		provider: provider,
		resolver: resolver,
		breaker:  circuit.New(VerifyBreakerName),
		tracer:   tracer.NewNoop(),
		now:      time.Now,
		retry:    DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) loadTenant(ctx context.Context, tenantID id.TenantID) (*tenantmodels.Tenant, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant ID required")
	}
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant")
	}
	return tenant, nil
}

// publish emits a domain event. Failures are logged and never returned.
func (s *Service) publish(ctx context.Context, eventType models.EventType, tenantID id.TenantID, domain string) {
	if s.publisher == nil {
		return
	}
	event := models.DomainEvent{
		Type:       eventType,
		TenantID:   tenantID.String(),
		Domain:     domain,
		OccurredAt: s.now(),
		RequestID:  request.GetRequestID(ctx),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish domain event",
			"event", string(eventType),
			"tenant_id", tenantID.String(),
			"domain", domain,
			"error", err,
		)
	}
}

func (s *Service) countOperation(operation string, err error) {
	if s.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = string(dErrors.CodeOf(err))
	}
	s.metrics.IncrementOperation(operation, result)
}
