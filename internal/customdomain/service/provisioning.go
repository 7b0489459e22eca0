package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/platform/tracer"
	"whitelabel/internal/provider"
	"whitelabel/internal/sentinel"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
	request "whitelabel/pkg/platform/middleware/request"
)

// AddDomain attaches rawDomain to the tenant. Provider registration of the
// apex and www hosts is best effort; the local claim is authoritative.
// Re-adding the tenant's current domain re-attempts registration and leaves
// the stored state, including the verified flag, untouched.
func (s *Service) AddDomain(ctx context.Context, tenantID id.TenantID, rawDomain string) (result *models.AddDomainResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanAddDomain, tracer.String(tracer.AttrTenantID, tenantID.String()))
	defer func() {
		s.countOperation("add", err)
		span.End(err)
	}()

	domain := models.NormalizeDomain(rawDomain)
	if err = models.ValidateDomain(domain, s.platformDomains); err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrDomain, domain))

	tenant, err := s.loadTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, dErrors.New(dErrors.CodeTenantSuspended, "suspended tenants cannot attach custom domains")
	}

	readd := tenant.CustomDomain == domain
	if !readd {
		if err = s.ensureUnclaimed(ctx, tenant.ID, domain); err != nil {
			return nil, err
		}
	}

	status := s.registerHosts(ctx, domain)

	if !readd {
		if err = s.claim(ctx, tenant.ID, domain); err != nil {
			return nil, err
		}
		span.AddEvent(tracer.EventDomainPersisted)
		s.publish(ctx, models.EventDomainAttached, tenant.ID, domain)

		if previous := tenant.CustomDomain; previous != "" {
			s.deregisterHosts(ctx, previous)
			s.publish(ctx, models.EventDomainDetached, tenant.ID, previous)
		}
	}

	s.logger.InfoContext(ctx, "custom domain attached",
		"tenant_id", tenant.ID.String(),
		"domain", domain,
		"readd", readd,
		"provider_status", status,
		"request_id", request.GetRequestID(ctx),
	)

	return &models.AddDomainResult{
		Domain:         domain,
		DNSConfig:      s.GetDNSTargets(ctx, domain),
		ProviderStatus: status,
	}, nil
}

// RemoveDomain detaches the tenant's custom domain. Provider deregistration
// is best effort.
func (s *Service) RemoveDomain(ctx context.Context, tenantID id.TenantID) (result *models.RemoveDomainResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRemoveDomain, tracer.String(tracer.AttrTenantID, tenantID.String()))
	defer func() {
		s.countOperation("remove", err)
		span.End(err)
	}()

	tenant, err := s.loadTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.HasCustomDomain() {
		return nil, dErrors.New(dErrors.CodeNoDomainConfigured, "no custom domain configured")
	}
	domain := tenant.CustomDomain
	span.SetAttributes(tracer.String(tracer.AttrDomain, domain))

	status := s.deregisterHosts(ctx, domain)

	if err = s.tenants.ClearDomain(ctx, tenant.ID, s.now()); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear custom domain")
	}
	s.publish(ctx, models.EventDomainDetached, tenant.ID, domain)

	s.logger.InfoContext(ctx, "custom domain removed",
		"tenant_id", tenant.ID.String(),
		"domain", domain,
		"provider_status", status,
		"request_id", request.GetRequestID(ctx),
	)
	return &models.RemoveDomainResult{RemovedDomain: domain, ProviderStatus: status}, nil
}

func (s *Service) ensureUnclaimed(ctx context.Context, tenantID id.TenantID, domain string) error {
	holder, err := s.tenants.FindByCustomDomain(ctx, domain)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check domain ownership")
	case holder.ID != tenantID:
		return dErrors.New(dErrors.CodeDomainAlreadyClaimed, "domain is already claimed by another tenant")
	}
	return nil
}

// claim persists the domain. The store's uniqueness guarantee is the backstop
// for a race lost after ensureUnclaimed passed.
func (s *Service) claim(ctx context.Context, tenantID id.TenantID, domain string) error {
	err := s.tenants.ClaimDomain(ctx, tenantID, domain, s.now())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeDomainAlreadyClaimed, "domain is already claimed by another tenant")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save custom domain")
	}
}

func hostsFor(domain string) []string {
	return []string{domain, models.WWWVariant(domain)}
}

// registerHosts adds the apex and www hosts concurrently and reports the
// outcome per host. It never fails.
func (s *Service) registerHosts(ctx context.Context, domain string) map[string]models.ProviderOutcome {
	return s.fanOut(ctx, domain, s.registerHost)
}

func (s *Service) deregisterHosts(ctx context.Context, domain string) map[string]models.ProviderOutcome {
	return s.fanOut(ctx, domain, s.deregisterHost)
}

func (s *Service) fanOut(ctx context.Context, domain string, call func(context.Context, string) models.ProviderOutcome) map[string]models.ProviderOutcome {
	hosts := hostsFor(domain)
	status := make(map[string]models.ProviderOutcome, len(hosts))
	if !s.provider.Configured() {
		for _, host := range hosts {
			status[host] = models.OutcomeSkipped
		}
		return status
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, host := range hosts {
		g.Go(func() error {
			outcome := call(gctx, host)
			mu.Lock()
			status[host] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return status
}

func (s *Service) registerHost(ctx context.Context, host string) models.ProviderOutcome {
	start := time.Now()
	reg, err := retry(ctx, s.retry, func() (provider.Registration, error) {
		return s.provider.AddDomain(ctx, host)
	})

	var outcome models.ProviderOutcome
	switch {
	case err == nil && reg == provider.RegistrationExisting:
		outcome = models.OutcomeAlreadyRegistered
	case err == nil:
		outcome = models.OutcomeRegistered
	case errors.Is(err, provider.ErrDomainInUseElsewhere):
		outcome = models.OutcomeInUseElsewhere
	default:
		outcome = models.OutcomeFailed
	}
	s.observeProviderCall(ctx, "add_domain", host, outcome, err, start)
	return outcome
}

func (s *Service) deregisterHost(ctx context.Context, host string) models.ProviderOutcome {
	start := time.Now()
	_, err := retry(ctx, s.retry, func() (struct{}, error) {
		return struct{}{}, s.provider.RemoveDomain(ctx, host)
	})

	outcome := models.OutcomeRemoved
	if err != nil {
		outcome = models.OutcomeFailed
	}
	s.observeProviderCall(ctx, "remove_domain", host, outcome, err, start)
	return outcome
}

func (s *Service) observeProviderCall(ctx context.Context, operation, host string, outcome models.ProviderOutcome, err error, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveProviderCall(operation, string(outcome), start)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "domain provider call did not succeed",
			"operation", operation,
			"host", host,
			"outcome", string(outcome),
			"category", string(provider.GetCategory(err)),
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	}
}

// retry runs op with exponential backoff while it fails with a retryable
// provider error.
func retry[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialInterval

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !provider.IsRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(policy.MaxAttempts),
		backoff.WithMaxElapsedTime(policy.MaxElapsed),
	)
}
