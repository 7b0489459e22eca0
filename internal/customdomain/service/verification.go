package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/platform/tracer"
	"whitelabel/internal/provider"
	"whitelabel/internal/sentinel"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
	request "whitelabel/pkg/platform/middleware/request"
)

// VerifyDomain advances the tenant's custom domain through
// pending_dns -> dns_observed -> verified. It is meant to be polled. The only
// mutation is the single false -> true write once the provider confirms the
// domain; provider and DNS failures downgrade to an inconclusive result.
func (s *Service) VerifyDomain(ctx context.Context, tenantID id.TenantID) (result *models.VerifyResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerifyDomain, tracer.String(tracer.AttrTenantID, tenantID.String()))
	defer func() {
		if result != nil {
			span.SetAttributes(tracer.String(tracer.AttrState, string(result.State)))
			if s.metrics != nil {
				s.metrics.IncrementVerification(string(result.State))
			}
		}
		s.countOperation("verify", err)
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

	if tenant.DomainVerified {
		return models.VerifiedResult(domain), nil
	}

	cfg, recommended := s.dnsTargets(ctx, domain)

	if s.providerConfirms(ctx, domain) {
		err = s.tenants.MarkDomainVerified(ctx, tenant.ID, domain, s.now())
		switch {
		case err == nil:
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, dErrors.New(dErrors.CodeConflict, "custom domain changed during verification")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record domain verification")
		}
		s.publish(ctx, models.EventDomainVerified, tenant.ID, domain)
		s.logger.InfoContext(ctx, "custom domain verified",
			"tenant_id", tenant.ID.String(),
			"domain", domain,
			"request_id", request.GetRequestID(ctx),
		)
		return models.VerifiedResult(domain), nil
	}

	if s.dnsMatches(ctx, domain, cfg, recommended) {
		return models.DNSObservedResult(domain, cfg), nil
	}
	return models.PendingDNSResult(domain, cfg), nil
}

// providerConfirms asks the provider whether it has verified domain. The call
// is skipped while the verify breaker is open.
func (s *Service) providerConfirms(ctx context.Context, domain string) bool {
	if !s.provider.Configured() {
		return false
	}
	if !s.breaker.Allow() {
		s.logger.DebugContext(ctx, "provider verification skipped, circuit open", "domain", domain)
		return false
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanProviderCall,
		tracer.String(tracer.AttrOperation, "get_project_domain"),
		tracer.String(tracer.AttrHost, domain),
	)
	pd, err := s.provider.GetProjectDomain(ctx, domain)
	span.End(err)

	// A domain missing from the project is a healthy answer.
	if err != nil && !provider.IsNotFound(err) {
		open, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "provider verification circuit opened", "breaker", s.breaker.Name(), "error", err)
		}
		if s.metrics != nil {
			s.metrics.SetBreakerOpen(open)
		}
		s.logger.WarnContext(ctx, "provider verification check failed", "domain", domain, "error", err)
		return false
	}

	_, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.logger.InfoContext(ctx, "provider verification circuit closed", "breaker", s.breaker.Name())
		if s.metrics != nil {
			s.metrics.SetBreakerOpen(false)
		}
	}
	return err == nil && pd != nil && pd.Verified
}

// dnsMatches reports whether the apex A record points at an accepted address
// or the apex or www CNAME points at the provider.
func (s *Service) dnsMatches(ctx context.Context, domain string, cfg models.DNSConfig, recommended []string) bool {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDNSLookup, tracer.String(tracer.AttrDomain, domain))
	defer span.End(nil)

	var (
		mu      sync.Mutex
		aValues []string
		cnames  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ips := s.lookup(gctx, "A", domain, s.resolver.LookupA)
		mu.Lock()
		aValues = append(aValues, ips...)
		mu.Unlock()
		return nil
	})
	for _, host := range hostsFor(domain) {
		g.Go(func() error {
			targets := s.lookup(gctx, "CNAME", host, s.resolver.LookupCNAME)
			mu.Lock()
			cnames = append(cnames, targets...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	accepted := make(map[string]struct{}, len(recommended)+len(s.acceptedIPs)+2)
	for _, ip := range append(append([]string{models.DefaultARecord, cfg.ARecord}, recommended...), s.acceptedIPs...) {
		accepted[ip] = struct{}{}
	}
	for _, ip := range aValues {
		if _, ok := accepted[ip]; ok {
			return true
		}
	}

	expected := strings.TrimSuffix(strings.ToLower(cfg.CNAMERecord), ".")
	for _, target := range cnames {
		target = strings.TrimSuffix(strings.ToLower(target), ".")
		if target == expected || target == models.ProviderCNAMESuffix || strings.HasSuffix(target, "."+models.ProviderCNAMESuffix) {
			return true
		}
	}
	return false
}

// lookup runs one DNS query; failures count as no records.
func (s *Service) lookup(ctx context.Context, recordType, name string, fn func(context.Context, string) ([]string, error)) []string {
	values, err := fn(ctx, name)
	result := "found"
	switch {
	case err != nil:
		result = "error"
		s.logger.WarnContext(ctx, "dns lookup failed", "type", recordType, "name", name, "error", err)
		values = nil
	case len(values) == 0:
		result = "empty"
	}
	if s.metrics != nil {
		s.metrics.IncrementDNSLookup(recordType, result)
	}
	return values
}
