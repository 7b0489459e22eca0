package service

import (
	"context"
	"strings"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/platform/tracer"
)

// GetDNSTargets returns the records a tenant must publish for domain. It
// never fails: without provider credentials, or when the provider call does
// not succeed, the provider defaults are returned.
func (s *Service) GetDNSTargets(ctx context.Context, domain string) models.DNSConfig {
	cfg, _ := s.dnsTargets(ctx, domain)
	return cfg
}

// dnsTargets also returns every provider-recommended IPv4 address, which
// verification accepts in addition to the selected one.
func (s *Service) dnsTargets(ctx context.Context, domain string) (models.DNSConfig, []string) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDNSTargets, tracer.String(tracer.AttrDomain, domain))
	defer span.End(nil)

	cfg := models.DefaultDNSConfig()
	var recommended []string
	defer func() {
		span.SetAttributes(tracer.String(tracer.AttrDNSSource, string(cfg.Source)))
		if s.metrics != nil {
			s.metrics.IncrementDNSTargetSource(string(cfg.Source))
		}
	}()

	if domain == "" || !s.provider.Configured() {
		return cfg, nil
	}

	pc, err := s.provider.GetDomainConfig(ctx, domain)
	if err != nil {
		s.logger.WarnContext(ctx, "falling back to default DNS targets",
			"domain", domain,
			"error", err,
		)
		return cfg, nil
	}

	cfg.Source = models.DNSSourceProvider
	if ip, ok := pc.PreferredIPv4(); ok {
		cfg.ARecord = ip
	}
	if cname, ok := pc.PreferredCNAME(); ok {
		cfg.CNAMERecord = strings.TrimSuffix(strings.ToLower(cname), ".")
	}
	recommended = pc.AllIPv4()
	return cfg, recommended
}
